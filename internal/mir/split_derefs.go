package mir

// SplitDerefs rewrites every place in the body so that a Deref projection
// only ever appears as the first element. Each embedded Deref is peeled
// into a fresh temporary holding the pointer value it follows, assigned
// with CopyForDeref and bracketed by storage markers. The returned tracker
// maps every temporary back to the place it was derived from; it must be
// handed to move and resource-lifetime analysis before those run.
//
// The pass runs once per body, after type checking and before drop
// elaboration, and is idempotent: a normalized body has no embedded Deref
// left, so every place is skipped on a second run.
func SplitDerefs(ctx *PassContext, body *Body) *DerefTracker {
	patch := NewPatch(ctx, body)
	tracker := NewDerefTracker(ctx)

	EachPlace(body, func(p *Place, pt Point, pcx PlaceContext) {
		splitPlace(ctx, body, patch, tracker, p, pt, pcx)
	})

	patch.Apply(body)
	return tracker
}

func splitPlace(ctx *PassContext, body *Body, patch *Patch, tracker *DerefTracker, p *Place, pt Point, pcx PlaceContext) {
	if len(p.Projection) == 0 || pcx == PlaceDebug || !p.HasEmbeddedDeref() {
		return
	}

	lastDeref := 0
	for idx, elem := range p.Projection {
		if _, ok := elem.(DerefElem); ok {
			lastDeref = idx
		}
	}

	// Each peeled Deref cuts the projection list: the temp holds the
	// pointer reached by the projections since the previous cut, and the
	// next cut projects relative to that temp.
	baseLoc := body.Local(ctx, p.Local).Location
	placeLocal := p.Local
	lastLen := 0
	prevTemp := ReturnLocal
	havePrev := false

	for idx, elem := range p.Projection {
		if _, ok := elem.(DerefElem); !ok || idx == 0 {
			continue
		}

		ty := PlaceType(ctx, body, p.Prefix(idx))
		temp := patch.NewDerefTemp(ty, baseLoc)

		if havePrev {
			patch.InsertBefore(pt, &StorageDead{Local: prevTemp, Location: baseLoc})
		}
		patch.InsertBefore(pt, &StorageLive{Local: temp, Location: baseLoc})

		derefPlace := PlaceFrom(placeLocal, p.Projection[lastLen:idx])
		patch.InsertBefore(pt, &Assign{
			Place:    PlaceOf(temp),
			Rvalue:   &CopyForDeref{Place: derefPlace},
			Location: baseLoc,
		})
		tracker.Record(temp, derefPlace)

		placeLocal = temp
		lastLen = idx
		prevTemp = temp
		havePrev = true

		// The final temp becomes the new base, carrying the remaining
		// projections starting with the Deref just reached.
		if idx == lastDeref {
			*p = PlaceFrom(temp, p.Projection[idx:])
			break
		}
	}

	// The last temp's storage ends here too; its one use is the rewritten
	// place in the statement this chain was peeled out of.
	if havePrev {
		patch.InsertBefore(pt, &StorageDead{Local: prevTemp, Location: baseLoc})
	}
}
