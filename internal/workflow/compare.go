package workflow

// Compare aligns two processes positionally and derives deterministic
// signals: step i of the as-is maps to step i of the to-be for the shared
// prefix, to-be overflow counts as added, as-is overflow as removed, and
// automation flips at aligned positions are classified by direction.
//
// Positional alignment is deliberate: redesigned workflows rarely preserve
// step identity, so pairing by position plus explicit add/remove tails
// gives the model concrete anchors without guessing at semantic matches.
func Compare(asIs, toBe ProcessInput) Signals {
	aligned := min(len(asIs.Steps), len(toBe.Steps))

	signals := Signals{
		AlignedSteps: aligned,
		AddedSteps:   []StepInput{},
		RemovedSteps: []StepInput{},
		Automated:    []AutomationDelta{},
		Deautomated:  []AutomationDelta{},
	}

	for i := 0; i < aligned; i++ {
		a, t := asIs.Steps[i], toBe.Steps[i]

		switch {
		case !a.IsAutomated && t.IsAutomated:
			signals.Automated = append(signals.Automated, AutomationDelta{
				Position: i + 1,
				AsIsStep: a,
				ToBeStep: t,
			})
		case a.IsAutomated && !t.IsAutomated:
			signals.Deautomated = append(signals.Deautomated, AutomationDelta{
				Position: i + 1,
				AsIsStep: a,
				ToBeStep: t,
			})
		}
	}

	if len(toBe.Steps) > aligned {
		signals.AddedSteps = append(signals.AddedSteps, toBe.Steps[aligned:]...)
	}
	if len(asIs.Steps) > aligned {
		signals.RemovedSteps = append(signals.RemovedSteps, asIs.Steps[aligned:]...)
	}

	return signals
}
