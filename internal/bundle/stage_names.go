package bundle

// StageName is a strongly-typed identifier for a workflow stage. All
// canonical stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePreflight    StageName = "preflight"
	StageEnsureTool   StageName = "ensure_tool"
	StageCheckDeps    StageName = "check_deps"
	StageGenerateSpec StageName = "generate_spec"
	StageRunPackager  StageName = "run_packager"
	StageVerifyOutput StageName = "verify_output"
)

// stageTitles are the operator-facing step descriptions printed as each
// stage completes.
var stageTitles = map[StageName]string{
	StagePreflight:    "entry script present",
	StageEnsureTool:   "packaging tool available",
	StageCheckDeps:    "dependencies available",
	StageGenerateSpec: "spec file generated",
	StageRunPackager:  "executable packaged",
	StageVerifyOutput: "output artifact verified",
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
