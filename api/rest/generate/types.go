package generate

// ImageRequest is the request body for image generation
type ImageRequest struct {
	Prompt string   `json:"prompt" binding:"required"`
	Images []string `json:"images"`
	Model  string   `json:"model"`
	Seed   *int64   `json:"seed"`
}

// ImageResponse is returned for a successful generation
type ImageResponse struct {
	Success        bool   `json:"success"`
	Image          string `json:"image"`
	Model          string `json:"model"`
	RemainingQuota int    `json:"remainingQuota"`
}

// EnhanceRequest is the request body for prompt enhancement
type EnhanceRequest struct {
	Prompt          string   `json:"prompt" binding:"required"`
	Style           string   `json:"style"`
	ReferenceImages []string `json:"referenceImages"`
}

// RefineRequest is the request body for prompt refinement. Mode selects
// between a one-shot rewrite ("auto"), generating clarifying questions
// ("questions"), and rewriting with the user's answers ("apply").
type RefineRequest struct {
	Prompt          string         `json:"prompt" binding:"required"`
	Mode            string         `json:"mode"`
	ReferenceImages []string       `json:"referenceImages"`
	Answers         []RefineAnswer `json:"answers"`
}

// RefineAnswer pairs a clarifying question with the user's chosen answer
type RefineAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RefineQuestion is one clarifying question with preset answer options;
// Answer starts empty and is filled in by the client
type RefineQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// RefineQuestionsResponse is returned by the "questions" mode
type RefineQuestionsResponse struct {
	Questions []RefineQuestion `json:"questions"`
}

// RefineResponse is returned by the "auto" and "apply" modes
type RefineResponse struct {
	Success        bool   `json:"success"`
	RefinedPrompt  string `json:"refinedPrompt"`
	RemainingQuota int    `json:"remainingQuota"`
}

// EnhanceResponse is returned for a successful enhancement, including the
// degraded local-fallback case
type EnhanceResponse struct {
	Success        bool   `json:"success"`
	EnhancedPrompt string `json:"enhancedPrompt"`
	OriginalPrompt string `json:"originalPrompt"`
	Style          string `json:"style"`
	Fallback       bool   `json:"fallback"`
	Message        string `json:"message,omitempty"`
	RemainingQuota int    `json:"remainingQuota"`
}
