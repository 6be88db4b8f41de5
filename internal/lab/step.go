package lab

// Step identifies the current stage of an experiment flow.
// Each blueprint declares its own ordered subsequence of steps;
// transitions are strictly forward except the reset transition back to intro.
type Step string

const (
	StepIntro           Step = "intro"
	StepCollectSupplies Step = "collect-supplies"
	StepSetup           Step = "setup"
	StepObserve         Step = "observe"
	StepResult          Step = "result"
	StepQuiz            Step = "quiz"
	StepComplete        Step = "complete"
)
