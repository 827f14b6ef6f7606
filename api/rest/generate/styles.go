package generate

// the default style when the request names none or an unknown one
const defaultStyle = "detailed"

// per-style instruction sent to the text model ahead of the user's prompt
var enhancementInstructions = map[string]string{
	"detailed":       "Enhance this image prompt with specific visual details. Keep it under 200 words. Add key details about lighting, colors, and composition while preserving the main concept.",
	"artistic":       "Transform this into an artistic image prompt. Keep it under 200 words. Add art style, color palette, and mood. Focus on the most important artistic elements.",
	"photorealistic": "Enhance this for photorealistic generation. Keep it under 200 words. Add key camera and lighting details, materials, and professional photography terms.",
	"cinematic":      "Make this cinematic. Keep it under 200 words. Add essential film lighting, camera angles, and dramatic composition details.",
}

// per-style suffix appended locally when the text model is unavailable or
// its output fails moderation
var fallbackSuffixes = map[string]string{
	"detailed":       ", highly detailed, sharp focus, vibrant colors, perfect lighting, professional quality",
	"artistic":       ", digital art, beautiful composition, dramatic lighting, masterpiece, artistic style",
	"photorealistic": ", photorealistic, professional photography, perfect lighting, ultra-realistic, high resolution",
	"cinematic":      ", cinematic lighting, dramatic composition, movie scene, professional cinematography",
}

func instructionFor(style string) (string, string) {
	if instruction, ok := enhancementInstructions[style]; ok {
		return instruction, style
	}

	return enhancementInstructions[defaultStyle], defaultStyle
}

// deterministic local enhancement used when the external call cannot serve
func fallbackEnhancement(prompt, style string) string {
	suffix, ok := fallbackSuffixes[style]
	if !ok {
		suffix = fallbackSuffixes[defaultStyle]
	}

	return prompt + suffix
}
