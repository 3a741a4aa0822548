package advice

import (
	"fmt"
	"strings"

	"roadweather-service/internal/store"
	t "roadweather-service/internal/types"
)

const promptTemplate = `You are a highly concise, safety-focused AI assistant providing driving advice. Based on the following current weather conditions and vehicle type, generate exactly two distinct sentences of essential driving advice. Each sentence must be provided on a new line, separated by a newline character. Do not include any introductory phrases, bullet points, numbered lists, or concluding remarks beyond these two sentences. Be direct and actionable.

Current Weather Conditions:
- Temperature: %d°C
- General Conditions: %s
- Visibility: %dm
- Wind Speed/Direction: %.1fm/s

Vehicle Type: %s

Example Output Format:
Sentence 1.
<NEWLINE>
Sentence 2.

Example 1:
Reduce your speed and increase your following distance in wet conditions.

Be extra vigilant for slippery surfaces like painted lines.

Example 2:
Strong crosswinds can destabilize your vehicle, especially high-sided ones.

Maintain a firm grip on the steering wheel and anticipate gusts.

Generate advice for the current conditions:`

// Prompt builds the fixed natural-language template submitted to the
// generative-text provider.
func Prompt(summary t.WeatherSummary, vehicle store.Vehicle) string {
	return fmt.Sprintf(promptTemplate,
		summary.Temperature, summary.Weather, summary.Visibility,
		summary.WindSpeed, vehicle)
}

// SplitLines breaks a model response into displayable advice lines,
// dropping empty lines and the <NEWLINE> placeholder the prompt's example
// format mentions.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "<NEWLINE>" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
