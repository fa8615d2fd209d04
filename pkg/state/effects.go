package state

// Actions expands the payload into reducer actions against gs. Each delta is
// evaluated against the state left by the previous one, so repeated ids
// accumulate. Existing resources move by the delta, floored at zero.
// Existing skills move by the delta (1 when unset), clamped to their cap.
// Missing ids are added only from complete records; anything else is
// dropped.
func (fe *FlatEffects) Actions(gs GameState) []Action {
	if fe.IsEmpty() {
		return nil
	}

	var actions []Action
	cur := gs
	emit := func(a Action) {
		actions = append(actions, a)
		cur = Reduce(cur, a)
	}

	for _, d := range fe.Resources {
		if d.ID == "" {
			continue
		}
		if existing, ok := cur.Resource(d.ID); ok {
			emit(UpdateResource{ID: d.ID, Quantity: max(0, existing.Quantity+d.Quantity)})
			continue
		}
		if d.Complete() && d.Quantity >= 0 {
			emit(AddResource{Resource: d.Resource()})
		}
	}

	for _, d := range fe.Skills {
		if d.ID == "" {
			continue
		}
		if existing, ok := cur.Skill(d.ID); ok {
			delta := d.Level
			if delta == 0 {
				delta = 1
			}
			emit(UpdateSkill{ID: d.ID, Level: ClampSkillLevel(existing.Level+delta, existing.MaxLevel)})
			continue
		}
		if d.Complete() {
			emit(AddSkill{Skill: d.Skill()})
		}
	}
	return actions
}

// Apply folds the expanded actions into gs.
func (fe *FlatEffects) Apply(gs GameState) GameState {
	for _, a := range fe.Actions(gs) {
		gs = Reduce(gs, a)
	}
	return gs
}

// Chain composes effects left to right, skipping nil ones. It returns nil
// when there is nothing to run.
func Chain(effects ...Effect) Effect {
	var fns []Effect
	for _, e := range effects {
		if e != nil {
			fns = append(fns, e)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(gs GameState) GameState {
		for _, fn := range fns {
			gs = fn(gs)
		}
		return gs
	}
}
