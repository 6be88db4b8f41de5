// Package catalog holds the built-in lab blueprints. Blueprints are
// data only; the generic controller in internal/lab runs them.
package catalog

import (
	"fmt"
	"time"

	"virtual-lab-be/internal/lab"
)

// All returns the built-in blueprints keyed by lab id.
func All() map[string]*lab.Blueprint {
	blueprints := []*lab.Blueprint{
		GasIdentification(),
		MetalReactivity(),
		ThermalExpansion(),
		FlameTest(),
		AcidBaseIndicators(),
		AmmoniaTest(),
	}
	out := make(map[string]*lab.Blueprint, len(blueprints))
	for _, b := range blueprints {
		out[b.ID] = b
	}
	return out
}

// Validate checks every built-in blueprint; called once at startup.
func Validate() error {
	for id, b := range All() {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("catalog: %s: %w", id, err)
		}
	}
	return nil
}

func standardSteps() []lab.Step {
	return []lab.Step{
		lab.StepIntro,
		lab.StepCollectSupplies,
		lab.StepSetup,
		lab.StepObserve,
		lab.StepQuiz,
		lab.StepComplete,
	}
}

// GasIdentification: test mystery tubes with a glowing/lit splint.
func GasIdentification() *lab.Blueprint {
	return &lab.Blueprint{
		ID:          "gas-identification",
		Title:       "Mystery Gas Identification",
		Emoji:       "🧪",
		Description: "Use splint tests to identify hydrogen, oxygen, carbon dioxide and plain air.",
		Steps:       standardSteps(),
		Supplies: []lab.SupplyItem{
			{ID: "test-tubes", Name: "Sealed test tubes", Emoji: "🧫", Description: "Four tubes, each holding a mystery gas", Required: true},
			{ID: "wooden-splint", Name: "Wooden splint", Emoji: "🪵", Description: "For the classic splint tests", Required: true},
			{ID: "matches", Name: "Matches", Emoji: "🔥", Description: "To light or glow the splint", Required: true},
			{ID: "safety-goggles", Name: "Safety goggles", Emoji: "🥽", Description: "Always protect your eyes", Required: true},
			{ID: "lab-coat", Name: "Lab coat", Emoji: "🥼", Description: "Optional but very scientific", Required: false},
		},
		Actions: []lab.ActionSpec{
			{ID: "arrange-tubes", ValidStep: lab.StepSetup, NextStep: lab.StepObserve, Delay: 1200 * time.Millisecond, SingleUse: true,
				Narration: "The tubes are lined up in the rack. Pick one and test it with the splint!"},
			{ID: "splint-test", ValidStep: lab.StepObserve, Delay: 2 * time.Second, RecordsOutcome: true,
				Narration: "Watch closely... what did the splint do?"},
		},
		Subjects: []lab.Subject{
			{ID: "hydrogen", Name: "Tube A"},
			{ID: "oxygen", Name: "Tube B"},
			{ID: "air", Name: "Tube C"},
			{ID: "carbon-dioxide", Name: "Tube D"},
		},
		Outcomes: map[string]lab.Outcome{
			"hydrogen":       lab.OutcomePop,
			"oxygen":         lab.OutcomeRelight,
			"air":            lab.OutcomeNothing,
			"carbon-dioxide": lab.OutcomeExtinguish,
		},
		ObserveStep:     lab.StepObserve,
		MinObservations: 3,
		Quiz: lab.Quiz{
			Questions: []lab.Question{
				{Index: 1, Prompt: "Which gas makes a lit splint go 'pop'?", Options: []lab.Option{
					{ID: "hydrogen", Label: "Hydrogen"}, {ID: "oxygen", Label: "Oxygen"}, {ID: "carbon-dioxide", Label: "Carbon dioxide"},
				}},
				{Index: 2, Prompt: "Which gas relights a glowing splint?", Options: []lab.Option{
					{ID: "air", Label: "Air"}, {ID: "oxygen", Label: "Oxygen"}, {ID: "hydrogen", Label: "Hydrogen"},
				}},
				{Index: 3, Prompt: "Which gas extinguishes a burning splint?", Options: []lab.Option{
					{ID: "carbon-dioxide", Label: "Carbon dioxide"}, {ID: "oxygen", Label: "Oxygen"}, {ID: "air", Label: "Air"},
				}},
			},
			Key: map[int]string{1: "hydrogen", 2: "oxygen", 3: "carbon-dioxide"},
		},
		Scoring: lab.Scoring{AttemptScores: []int{100, 80, 60}},
		Narration: map[lab.Step]string{
			lab.StepIntro:           "Today we are gas detectives! Four tubes, four mystery gases.",
			lab.StepCollectSupplies: "First, gather your equipment from the supply shelf.",
			lab.StepSetup:           "Great! Now arrange the tubes in the rack so we can test them safely.",
			lab.StepObserve:         "Pick a tube, then bring the splint close and watch what happens.",
			lab.StepQuiz:            "You have seen the evidence. Time to name those gases!",
			lab.StepComplete:        "Brilliant detective work! You identified the mystery gases.",
		},
		ReadyNarration: "That's everything! Press continue when you are ready to set up.",
	}
}

// MetalReactivity: drop metals into dilute acid and rank their vigor.
// Scoring is a flat 100 regardless of quiz attempts, matching the
// original lab's behavior (see DESIGN.md).
func MetalReactivity() *lab.Blueprint {
	return &lab.Blueprint{
		ID:          "metal-reactivity",
		Title:       "Metals in Acid",
		Emoji:       "⚗️",
		Description: "Compare how vigorously magnesium, zinc, iron and copper react with dilute hydrochloric acid.",
		Steps:       standardSteps(),
		Supplies: []lab.SupplyItem{
			{ID: "dilute-acid", Name: "Dilute hydrochloric acid", Emoji: "🧴", Description: "Handle with care", Required: true},
			{ID: "metal-strips", Name: "Metal strips", Emoji: "🔩", Description: "Magnesium, zinc, iron and copper", Required: true},
			{ID: "test-tubes", Name: "Test tubes", Emoji: "🧪", Description: "One per metal", Required: true},
			{ID: "safety-goggles", Name: "Safety goggles", Emoji: "🥽", Description: "Acid splashes sting", Required: true},
		},
		Actions: []lab.ActionSpec{
			{ID: "pour-acid", ValidStep: lab.StepSetup, NextStep: lab.StepObserve, Delay: 1500 * time.Millisecond, SingleUse: true,
				Narration: "Acid poured. Now drop a metal strip into a tube and watch the bubbles."},
			{ID: "drop-metal", ValidStep: lab.StepObserve, Delay: 3 * time.Second, RecordsOutcome: true,
				Narration: "Look at the surface of the metal. How fast are the bubbles?"},
		},
		Subjects: []lab.Subject{
			{ID: "magnesium", Name: "Magnesium"},
			{ID: "zinc", Name: "Zinc"},
			{ID: "iron", Name: "Iron"},
			{ID: "copper", Name: "Copper"},
		},
		Outcomes: map[string]lab.Outcome{
			"magnesium": lab.OutcomeVeryFast,
			"zinc":      lab.OutcomeFast,
			"iron":      lab.OutcomeSlow,
			"copper":    lab.OutcomeNoReaction,
		},
		ObserveStep:     lab.StepObserve,
		MinObservations: 3,
		Quiz: lab.Quiz{
			Questions: []lab.Question{
				{Index: 1, Prompt: "Which metal reacted most vigorously?", Options: []lab.Option{
					{ID: "magnesium", Label: "Magnesium"}, {ID: "iron", Label: "Iron"}, {ID: "copper", Label: "Copper"},
				}},
				{Index: 2, Prompt: "Which metal showed no reaction at all?", Options: []lab.Option{
					{ID: "zinc", Label: "Zinc"}, {ID: "copper", Label: "Copper"}, {ID: "magnesium", Label: "Magnesium"},
				}},
				{Index: 3, Prompt: "The bubbles produced are which gas?", Options: []lab.Option{
					{ID: "hydrogen", Label: "Hydrogen"}, {ID: "oxygen", Label: "Oxygen"}, {ID: "chlorine", Label: "Chlorine"},
				}},
			},
			Key: map[int]string{1: "magnesium", 2: "copper", 3: "hydrogen"},
		},
		Scoring: lab.Scoring{AttemptScores: []int{100}},
		Narration: map[lab.Step]string{
			lab.StepIntro:           "Some metals fizz like crazy in acid, some just sit there. Let's rank them!",
			lab.StepCollectSupplies: "Grab the acid, the metal strips and your goggles.",
			lab.StepSetup:           "Carefully pour a little acid into each tube.",
			lab.StepObserve:         "Choose a metal and drop it in. Count the bubbles!",
			lab.StepQuiz:            "You've seen all the reactions. Quiz time!",
			lab.StepComplete:        "Reactivity series mastered. Well done!",
		},
		ReadyNarration: "Tray complete! Continue when you are ready.",
	}
}

// ThermalExpansion: the classic ball-and-ring demonstration.
func ThermalExpansion() *lab.Blueprint {
	return &lab.Blueprint{
		ID:          "thermal-expansion",
		Title:       "Ball and Ring",
		Emoji:       "🔥",
		Description: "Heat a brass ball and see whether it still fits through the ring.",
		Steps:       standardSteps(),
		Supplies: []lab.SupplyItem{
			{ID: "brass-ball", Name: "Brass ball on a chain", Emoji: "⚙️", Description: "Fits the ring exactly at room temperature", Required: true},
			{ID: "metal-ring", Name: "Metal ring on a handle", Emoji: "⭕", Description: "The gatekeeper", Required: true},
			{ID: "bunsen-burner", Name: "Bunsen burner", Emoji: "🔥", Description: "Our heat source", Required: true},
			{ID: "heat-gloves", Name: "Heat-resistant gloves", Emoji: "🧤", Description: "Hot metal looks exactly like cold metal", Required: true},
		},
		Actions: []lab.ActionSpec{
			{ID: "place-bunsen-burner", ValidStep: lab.StepSetup, NextStep: lab.StepObserve, Delay: 500 * time.Millisecond, SingleUse: true,
				Narration: "Burner lit with a steady blue flame. Let's test the ball."},
			{ID: "try-ring", ValidStep: lab.StepObserve, Delay: 8 * time.Second, RecordsOutcome: true,
				Narration: "Slowly now... does the ball pass through the ring?"},
		},
		Subjects: []lab.Subject{
			{ID: "cold-ball", Name: "Ball at room temperature"},
			{ID: "heated-ball", Name: "Ball after heating"},
			{ID: "cooled-ball", Name: "Ball after cooling in water"},
		},
		Outcomes: map[string]lab.Outcome{
			"cold-ball":   lab.Outcome("passes-through"),
			"heated-ball": lab.Outcome("stuck"),
			"cooled-ball": lab.Outcome("passes-through"),
		},
		ObserveStep:     lab.StepObserve,
		MinObservations: 2,
		Quiz: lab.Quiz{
			Questions: []lab.Question{
				{Index: 1, Prompt: "What happens to the brass ball when heated?", Options: []lab.Option{
					{ID: "expands", Label: "It expands"}, {ID: "contracts", Label: "It contracts"}, {ID: "melts", Label: "It melts"},
				}},
				{Index: 2, Prompt: "What happens when the ball cools down again?", Options: []lab.Option{
					{ID: "contracts", Label: "It contracts"}, {ID: "expands", Label: "It keeps expanding"}, {ID: "nothing", Label: "Nothing"},
				}},
				{Index: 3, Prompt: "Why does heating make the ball bigger?", Options: []lab.Option{
					{ID: "particles-vibrate", Label: "Its particles vibrate more and take up more room"},
					{ID: "particles-grow", Label: "Its particles grow larger"},
					{ID: "new-particles", Label: "New particles appear"},
				}},
			},
			Key: map[int]string{1: "expands", 2: "contracts", 3: "particles-vibrate"},
		},
		Scoring: lab.Scoring{AttemptScores: []int{100, 80, 60}},
		Narration: map[lab.Step]string{
			lab.StepIntro:           "Can heat make solid metal grow? Let's find out with the ball and ring.",
			lab.StepCollectSupplies: "Collect the ball, the ring, the burner and those gloves.",
			lab.StepSetup:           "Set the burner on the mat and light it.",
			lab.StepObserve:         "Test the ball against the ring before and after heating.",
			lab.StepQuiz:            "You saw it with your own eyes. Explain it!",
			lab.StepComplete:        "Thermal expansion: observed, explained, conquered.",
		},
		ReadyNarration: "All set! Continue to build the apparatus.",
	}
}

// FlameTest: identify metal ions by flame color.
func FlameTest() *lab.Blueprint {
	return &lab.Blueprint{
		ID:          "flame-test",
		Title:       "Flame Test Colors",
		Emoji:       "🎆",
		Description: "Dip a loop in metal salts and read the flame color like a fingerprint.",
		Steps:       standardSteps(),
		Supplies: []lab.SupplyItem{
			{ID: "nichrome-loop", Name: "Nichrome wire loop", Emoji: "➰", Description: "Cleans to a colorless flame", Required: true},
			{ID: "salt-samples", Name: "Metal salt samples", Emoji: "🧂", Description: "Four unlabeled dishes", Required: true},
			{ID: "bunsen-burner", Name: "Bunsen burner", Emoji: "🔥", Description: "Roaring blue flame needed", Required: true},
			{ID: "safety-goggles", Name: "Safety goggles", Emoji: "🥽", Description: "Bright flames ahead", Required: true},
		},
		Actions: []lab.ActionSpec{
			{ID: "light-burner", ValidStep: lab.StepSetup, NextStep: lab.StepObserve, Delay: 1 * time.Second, SingleUse: true,
				Narration: "Blue flame ready. Dip the loop in a sample and hold it in the flame."},
			{ID: "hold-in-flame", ValidStep: lab.StepObserve, Delay: 2500 * time.Millisecond, RecordsOutcome: true,
				Narration: "Look at that color! Note it down before it fades."},
		},
		Subjects: []lab.Subject{
			{ID: "sodium", Name: "Sample 1"},
			{ID: "potassium", Name: "Sample 2"},
			{ID: "calcium", Name: "Sample 3"},
			{ID: "copper-salt", Name: "Sample 4"},
		},
		Outcomes: map[string]lab.Outcome{
			"sodium":      lab.Outcome("yellow-orange"),
			"potassium":   lab.Outcome("lilac"),
			"calcium":     lab.Outcome("brick-red"),
			"copper-salt": lab.Outcome("blue-green"),
		},
		ObserveStep:     lab.StepObserve,
		MinObservations: 3,
		Quiz: lab.Quiz{
			Questions: []lab.Question{
				{Index: 1, Prompt: "A yellow-orange flame means which metal ion?", Options: []lab.Option{
					{ID: "sodium", Label: "Sodium"}, {ID: "potassium", Label: "Potassium"}, {ID: "copper", Label: "Copper"},
				}},
				{Index: 2, Prompt: "Which ion burns with a lilac flame?", Options: []lab.Option{
					{ID: "calcium", Label: "Calcium"}, {ID: "potassium", Label: "Potassium"}, {ID: "sodium", Label: "Sodium"},
				}},
				{Index: 3, Prompt: "A blue-green flame points to...", Options: []lab.Option{
					{ID: "copper", Label: "Copper"}, {ID: "calcium", Label: "Calcium"}, {ID: "iron", Label: "Iron"},
				}},
			},
			Key: map[int]string{1: "sodium", 2: "potassium", 3: "copper"},
		},
		Scoring: lab.Scoring{AttemptScores: []int{100, 80, 60}},
		Narration: map[lab.Step]string{
			lab.StepIntro:           "Every metal paints the flame its own color. Let's read the fingerprints!",
			lab.StepCollectSupplies: "Gather the loop, the samples and the burner.",
			lab.StepSetup:           "Light the burner and open the air hole for a blue flame.",
			lab.StepObserve:         "Dip, hold, observe. One sample at a time.",
			lab.StepQuiz:            "Colors observed! Match them to their metals.",
			lab.StepComplete:        "You can now identify metals by eye. Like a wizard, but with goggles.",
		},
		ReadyNarration: "Everything's on the bench. Continue when ready!",
	}
}

// AcidBaseIndicators: classify household liquids with universal indicator.
func AcidBaseIndicators() *lab.Blueprint {
	return &lab.Blueprint{
		ID:          "acid-base-indicators",
		Title:       "Acid or Base?",
		Emoji:       "🌈",
		Description: "Add universal indicator to everyday liquids and read the color scale.",
		Steps:       standardSteps(),
		Supplies: []lab.SupplyItem{
			{ID: "indicator", Name: "Universal indicator", Emoji: "💧", Description: "The color-changing magic", Required: true},
			{ID: "liquid-samples", Name: "Liquid samples", Emoji: "🥤", Description: "Vinegar, soap solution and water", Required: true},
			{ID: "test-tubes", Name: "Test tubes", Emoji: "🧪", Description: "One per liquid", Required: true},
			{ID: "dropper", Name: "Dropper", Emoji: "💉", Description: "A few drops is plenty", Required: true},
		},
		Actions: []lab.ActionSpec{
			{ID: "fill-tubes", ValidStep: lab.StepSetup, NextStep: lab.StepObserve, Delay: 1 * time.Second, SingleUse: true,
				Narration: "Samples ready. Add a few drops of indicator to each and watch the colors."},
			{ID: "add-indicator", ValidStep: lab.StepObserve, Delay: 1500 * time.Millisecond, RecordsOutcome: true,
				Narration: "The color is settling... what does it tell you?"},
		},
		Subjects: []lab.Subject{
			{ID: "vinegar", Name: "Vinegar"},
			{ID: "soap-solution", Name: "Soap solution"},
			{ID: "pure-water", Name: "Pure water"},
		},
		Outcomes: map[string]lab.Outcome{
			"vinegar":       lab.Outcome("red"),
			"soap-solution": lab.Outcome("blue"),
			"pure-water":    lab.Outcome("green"),
		},
		ObserveStep:     lab.StepObserve,
		MinObservations: 2,
		Quiz: lab.Quiz{
			Questions: []lab.Question{
				{Index: 1, Prompt: "The indicator turned red in vinegar. Vinegar is...", Options: []lab.Option{
					{ID: "acid", Label: "An acid"}, {ID: "base", Label: "A base"}, {ID: "neutral", Label: "Neutral"},
				}},
				{Index: 2, Prompt: "Soap solution turned the indicator...", Options: []lab.Option{
					{ID: "blue", Label: "Blue"}, {ID: "red", Label: "Red"}, {ID: "colorless", Label: "Colorless"},
				}},
				{Index: 3, Prompt: "Green indicator in pure water means water is...", Options: []lab.Option{
					{ID: "neutral", Label: "Neutral"}, {ID: "acid", Label: "An acid"}, {ID: "base", Label: "A base"},
				}},
			},
			Key: map[int]string{1: "acid", 2: "blue", 3: "neutral"},
		},
		Scoring: lab.Scoring{AttemptScores: []int{100, 80, 60}},
		Narration: map[lab.Step]string{
			lab.StepIntro:           "Acids and bases hide in your kitchen. The indicator will expose them!",
			lab.StepCollectSupplies: "Collect the indicator, samples, tubes and dropper.",
			lab.StepSetup:           "Pour each liquid into its own tube.",
			lab.StepObserve:         "Pick a tube and add a few drops of indicator.",
			lab.StepQuiz:            "Red, blue, green... now prove you can read the rainbow.",
			lab.StepComplete:        "pH detective badge earned!",
		},
		ReadyNarration: "Supplies complete. On to the bench!",
	}
}

// AmmoniaTest: the damp red litmus test for ammonia gas.
func AmmoniaTest() *lab.Blueprint {
	return &lab.Blueprint{
		ID:          "ammonia-test",
		Title:       "The Ammonia Test",
		Emoji:       "🐟",
		Description: "Warm an ammonium salt with alkali and test the sharp-smelling gas with damp litmus.",
		Steps:       standardSteps(),
		Supplies: []lab.SupplyItem{
			{ID: "ammonium-salt", Name: "Ammonium chloride", Emoji: "🧂", Description: "Our ammonia source", Required: true},
			{ID: "alkali", Name: "Sodium hydroxide solution", Emoji: "🧴", Description: "Frees the ammonia when warmed", Required: true},
			{ID: "red-litmus", Name: "Damp red litmus paper", Emoji: "📄", Description: "The tell-tale strip", Required: true},
			{ID: "bunsen-burner", Name: "Bunsen burner", Emoji: "🔥", Description: "Gentle warming only", Required: true},
		},
		Actions: []lab.ActionSpec{
			{ID: "warm-mixture", ValidStep: lab.StepSetup, NextStep: lab.StepObserve, Delay: 2 * time.Second, SingleUse: true,
				Narration: "The mixture is warming. Can you smell that? Hold the litmus over the mouth of the tube."},
			{ID: "hold-litmus", ValidStep: lab.StepObserve, Delay: 1800 * time.Millisecond, RecordsOutcome: true,
				Narration: "Watch the litmus paper closely..."},
		},
		Subjects: []lab.Subject{
			{ID: "ammonia-gas", Name: "Gas above the mixture"},
		},
		Outcomes: map[string]lab.Outcome{
			"ammonia-gas": lab.Outcome("litmus-turns-blue"),
		},
		ObserveStep:     lab.StepObserve,
		MinObservations: 1,
		Quiz: lab.Quiz{
			Questions: []lab.Question{
				{Index: 1, Prompt: "Ammonia turns damp red litmus blue because it is...", Options: []lab.Option{
					{ID: "base", Label: "A base"}, {ID: "acid", Label: "An acid"}, {ID: "neutral", Label: "Neutral"},
				}},
				{Index: 2, Prompt: "What color does the damp red litmus become?", Options: []lab.Option{
					{ID: "blue", Label: "Blue"}, {ID: "white", Label: "White"}, {ID: "yellow", Label: "Yellow"},
				}},
				{Index: 3, Prompt: "The chemical formula of ammonia is...", Options: []lab.Option{
					{ID: "nh3", Label: "NH₃"}, {ID: "no2", Label: "NO₂"}, {ID: "ch4", Label: "CH₄"},
				}},
			},
			Key: map[int]string{1: "base", 2: "blue", 3: "nh3"},
		},
		Scoring: lab.Scoring{AttemptScores: []int{100, 80, 60}},
		Narration: map[lab.Step]string{
			lab.StepIntro:           "One gas announces itself by smell alone. Today we trap and test ammonia.",
			lab.StepCollectSupplies: "Collect the salt, the alkali, the litmus and the burner.",
			lab.StepSetup:           "Mix a little salt and alkali in the tube, then warm it gently.",
			lab.StepObserve:         "Hold the damp litmus at the mouth of the tube. Never sniff directly!",
			lab.StepQuiz:            "You caught the gas red... well, blue-handed. Quiz time!",
			lab.StepComplete:        "The ammonia test is yours forever. Pungent, but satisfying.",
		},
		ReadyNarration: "Kit complete! Continue to the bench.",
	}
}
