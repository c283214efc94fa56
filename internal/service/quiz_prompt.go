package service

import (
	"fmt"
	"strings"
)

// BuildQuizPrompt returns the fixed instruction sent with every image.
func BuildQuizPrompt(count int) string {
	var sb strings.Builder

	sb.WriteString("You are a quiz generator. Analyze this image and create multiple choice questions ")
	sb.WriteString("based on its content and in its original language.\n\n")
	if count > 0 {
		sb.WriteString(fmt.Sprintf("Create exactly %d questions.\n\n", count))
	}

	sb.WriteString("IMPORTANT: Your response must be ONLY a valid JSON array with exactly this structure:\n")
	sb.WriteString(`[
  {
    "id": "1",
    "question": "What is shown in the image?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": "Option A"
  }
]`)
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString("- Each question must have exactly 4 options\n")
	sb.WriteString("- The correctAnswer must match one of the options exactly\n")
	if count > 0 {
		sb.WriteString(fmt.Sprintf("- The id should be a string number from \"1\" to \"%d\"\n", count))
	} else {
		sb.WriteString("- The id should be a string number starting at \"1\"\n")
	}
	sb.WriteString("- Do not include any explanations or additional text\n")
	sb.WriteString("- Ensure the response is valid JSON\n")
	sb.WriteString("- Do not translate or transliterate the original language of the image\n\n")
	sb.WriteString("RESPOND ONLY WITH THE JSON ARRAY, NO OTHER TEXT.")

	return sb.String()
}
