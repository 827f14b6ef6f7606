package gemini

// wire structs for the generativelanguage generateContent endpoint

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64-encoded image bytes
}

type generationConfig struct {
	Temperature        float32  `json:"temperature"`
	CandidateCount     int      `json:"candidateCount"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
	Seed               *int64   `json:"seed,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *content `json:"content"`
}

// error body shape returned on failure; 429 responses carry a RetryInfo
// detail with a suggested retry delay
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Type       string `json:"@type"`
			RetryDelay string `json:"retryDelay"`
		} `json:"details"`
	} `json:"error"`
}

// request to generate an image from a prompt and optional input images
type ImageRequest struct {
	Prompt string
	Images []string // base64-encoded PNG payloads for image-to-image
	Model  string
	Seed   *int64
}

// a successfully generated image
type ImageResult struct {
	ImageData string // data-URI (data:image/png;base64,...)
	Model     string
}

// request for a text completion
type TextRequest struct {
	Prompt      string
	Images      []string // optional reference images
	Temperature float32
}
