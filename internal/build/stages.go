package build

// Stage names used for logging and metrics.
const (
	StageRead        = "read"
	StageParse       = "parse"
	StageLinkMap     = "link_map"
	StageRenderIndex = "render_index"
	StageRenderTerms = "render_terms"
	StageVerify      = "verify"
)
