package analysis

import "fmt"

// systemInstruction is the fixed instruction sent with every analysis
// request. It pins the exact output schema: JSON only, exact key names,
// every array present even when empty, action items phrased as concrete
// imperative tasks, keyword definitions exactly one sentence. The
// instruction is the only schema enforcement on the provider side; the
// response still goes through schema validation before being trusted.
const systemInstruction = `You are an analysis engine.
Always return ONLY valid JSON in exactly this format:

{
  "summary": {
    "main_points": ["List the most important ideas as short, clear bullet points."],
    "action_items": [
      "Action items must be concrete, specific, and start with an imperative verb (e.g., 'Schedule...', 'Review...', 'Send...', 'Prepare...').",
      "They should represent tasks someone can actually do, not reflections or advice."
    ],
    "decisions": ["List only explicit decisions reached in the discussion."]
  },
  "topics": [
    { "topic": "Short descriptive label", "start": 0, "end": 0, "weight": 0 }
  ],
  "keywords": [
    { "term": "Important term", "count": 0, "definition": "Explain the term in exactly one clear sentence." }
  ],
  "offTopic": [
    { "start": 0, "end": 0, "note": "One-sentence note about what was off-topic." }
  ]
}

Guidelines:
- Action items = tasks you can check off a to-do list (no vague reflections).
- Keep writing concise and professional.
- Use plain English, avoid filler phrases.
- Do not include anything outside the JSON object.
- All arrays must always be present (even if empty).`

// buildUserPrompt wraps the transcript for the user turn.
func buildUserPrompt(transcript string) string {
	return fmt.Sprintf("Transcript:\n\"\"\"%s\"\"\"", transcript)
}
