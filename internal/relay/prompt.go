package relay

import "github.com/yourorg/ui-prompt-relay/internal/providers"

// Model is the completion model every request is sent to.
const Model = "gpt-3.5-turbo"

// PlaceholderImageURL is the only image source the model is allowed to use.
const PlaceholderImageURL = "https://placehold.co/400x300"

// SystemPrompt is sent ahead of every user prompt. The frontend renders the
// model output with react-live, so the wording here is load-bearing.
const SystemPrompt = `You are a senior frontend engineer.

When given a user prompt, generate a valid anonymous React component using JSX syntax and Tailwind CSS for styling.

✅ Requirements:
- Return ONLY a single anonymous arrow function like: () => (...) or () => { return (...) }
- Use React.useState or React.useEffect when interactivity is needed (e.g., toggling, form inputs, dynamic behavior)
- Do NOT include: import, export, const, function, require, or markdown backticks (` + "```jsx" + `)
- The output must be valid JSX and ready to render inside: render(<Component />)
- Use Tailwind CSS for styling
- If an image is needed, use ` + PlaceholderImageURL + `
- NEVER return any explanation, comments, or markdown — just the JSX arrow function

🧠 Example output:
() => {
  const [clicked, setClicked] = React.useState(false);
  return (
    <button onClick={() => setClicked(!clicked)} className="p-2 bg-blue-500 text-white">
      {clicked ? 'Clicked!' : 'Click Me'}
    </button>
  );
}
`

// BuildRequest wraps prompt as the user message after the fixed system message.
func BuildRequest(prompt string) providers.ChatRequest {
	return providers.ChatRequest{
		Model: Model,
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: SystemPrompt},
			{Role: providers.RoleUser, Content: prompt},
		},
	}
}
