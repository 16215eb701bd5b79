package assistant

import "strings"

// SpeakableText strips the markup a model tends to emit (emphasis, inline
// code, headings) so the text can be handed to speech synthesis as-is. The
// speech collaborator itself lives outside this module.
func SpeakableText(text string) string {
	var out strings.Builder

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, "# ")

		trimmed = strings.NewReplacer("**", "", "*", "", "__", "", "_", "", "`", "").Replace(trimmed)

		if out.Len() > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(trimmed)
	}

	return strings.TrimSpace(out.String())
}
