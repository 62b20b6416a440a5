package agent

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"voice-bridge/internal/voicecall/call"
	"voice-bridge/internal/voicecall/frames"
)

// Fallback persona used when no context record matched the call.
const (
	FallbackPrompt   = "You are a customer service representative"
	FallbackGreeting = "Hello, do you have a moment to talk?"
)

// SystemPrompt frames every debtor conversation, whatever the channel.
const SystemPrompt = `You are a debt collection agent handling professional, compliant conversations with debtors.

CRITICAL INSTRUCTIONS
- Always communicate clearly, in the debtor's language.
- Never disclose one debtor's data to anyone else.
- Comply with all legal regulations; compliance comes before collection.
- Stay professional, kind and understanding of the debtor's circumstances.

AMOUNTS
Amounts are stored in the smallest currency unit. Divide by 100 before saying them:
15000 is 150.00 PLN and 1050 is 10.50 PLN. Never quote the stored integer.`

const contextBlock = `Name: {{.Name}}
Case Number: {{.CaseNumber}}
Debt Amount: {{.Amount}}
Caller Phone: {{.Phone}},
Case Description: {{.Description}}`

var (
	inboundPrompt = template.Must(template.New("inbound").Parse(`You are an inbound call agent. Context about the caller:
` + contextBlock + `

AVAILABLE TOOLS
1. debtor_panel: Send SMS with URL to debtor panel where all information about debt as well as secure link to make payment is available. Use it always when the debtor wants to pay.

Important: All monetary values are stored as integers representing the smallest currency unit (e.g., 1000 represents 10.00 PLN).`))

	outboundPrompt = template.Must(template.New("outbound").Parse(`You are an outbound call agent. Context about the person you're calling:
` + contextBlock + `
{{if .Custom}}
{{.Custom}}{{end}}`))

	initMessagePrompt = template.Must(template.New("init_message").Parse(`Write the first SMS to a debtor about their case. Send at most one message.
Explain who is contacting them and why, and that they can reply to this message to learn more.

Context about the debtor:
Name: {{.Name}}
Language: {{.Language}}
Case Number: {{.CaseNumber}}
Debt Amount: {{.Amount}}
Phone: {{.Phone}}
Description: {{.Description}}

Write the message in the debtor's language.

Please avoid:
- Making promises about debt forgiveness
- Sharing sensitive information without verification
- Being confrontational or aggressive`))

	inboundGreeting  = template.Must(template.New("inbound_greeting").Parse(`Hi {{.FirstName}}! I see you're calling about your {{.CaseNumber}}. How can I help you today?`))
	outboundGreeting = template.Must(template.New("outbound_greeting").Parse(`Hi {{.FirstName}}! I'm calling about your {{.CaseNumber}}. Do you have a moment to talk?`))
)

type promptData struct {
	Name        string
	FirstName   string
	Language    string
	CaseNumber  string
	Amount      string
	Phone       string
	Description string
	Custom      string
}

// SessionParams is everything the initial agent configuration is derived from.
type SessionParams struct {
	Direction      call.Direction
	Record         *call.ContextRecord
	CallerIdentity string
	CustomParams   map[string]string
}

// BuildInitialConfig renders the persona prompt, opening line and dynamic
// variables for a new agent session. Without a context record it falls back
// to the caller-supplied prompt, or the generic persona.
func BuildInitialConfig(p SessionParams) (frames.InitiationClientData, error) {
	custom := strings.TrimSpace(p.CustomParams[frames.ParamPrompt])

	if p.Record == nil {
		prompt := FallbackPrompt
		if custom != "" {
			prompt = custom
		}
		return frames.NewInitiationClientData(prompt, FallbackGreeting, nil), nil
	}

	data := promptData{
		Name:        p.Record.Debtor.FullName(),
		FirstName:   p.Record.Debtor.FirstName,
		CaseNumber:  p.Record.Case.CaseNumber,
		Amount:      p.Record.Case.FormattedAmount(),
		Phone:       p.CallerIdentity,
		Description: p.Record.Case.CaseDescription,
		Custom:      custom,
	}

	promptTmpl, greetingTmpl := inboundPrompt, inboundGreeting
	if p.Direction == call.DirectionOutbound {
		promptTmpl, greetingTmpl = outboundPrompt, outboundGreeting
	}

	prompt, err := render(promptTmpl, data)
	if err != nil {
		return frames.InitiationClientData{}, err
	}
	greeting, err := render(greetingTmpl, data)
	if err != nil {
		return frames.InitiationClientData{}, err
	}

	vars := map[string]string{
		"caller_phone":     data.Phone,
		"caller_name":      data.Name,
		"case_number":      data.CaseNumber,
		"debt_amount":      data.Amount,
		"case_description": data.Description,
	}
	return frames.NewInitiationClientData(prompt, greeting, vars), nil
}

func render(t *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// PromptKind names a prompt that can be previewed.
type PromptKind string

const (
	PromptInboundCall  PromptKind = "inbound-call"
	PromptOutboundCall PromptKind = "outbound-call"
	PromptInitMessage  PromptKind = "init-message"
)

var ErrUnknownPrompt = errors.New("unknown prompt")

// PromptPreview is a rendered prompt alongside the system prompt it runs under.
type PromptPreview struct {
	SystemPrompt string `json:"system_prompt"`
	Prompt       string `json:"prompt"`
}

// PreviewParams is the debtor context a preview is rendered for.
type PreviewParams struct {
	Record call.ContextRecord
	Phone  string
	Custom string
}

// PreviewPrompt renders kind exactly as a call or first message would see it.
func PreviewPrompt(kind PromptKind, p PreviewParams) (PromptPreview, error) {
	var direction call.Direction
	switch kind {
	case PromptInboundCall:
		direction = call.DirectionInbound
	case PromptOutboundCall:
		direction = call.DirectionOutbound
	case PromptInitMessage:
		prompt, err := render(initMessagePrompt, promptData{
			Name:        p.Record.Debtor.FullName(),
			Language:    p.Record.Debtor.Language,
			CaseNumber:  p.Record.Case.CaseNumber,
			Amount:      p.Record.Case.FormattedAmount(),
			Phone:       p.Phone,
			Description: p.Record.Case.CaseDescription,
		})
		if err != nil {
			return PromptPreview{}, err
		}
		return PromptPreview{SystemPrompt: SystemPrompt, Prompt: prompt}, nil
	default:
		return PromptPreview{}, fmt.Errorf("%w: %q", ErrUnknownPrompt, kind)
	}

	record := p.Record
	params := SessionParams{Direction: direction, Record: &record, CallerIdentity: p.Phone}
	if p.Custom != "" {
		params.CustomParams = map[string]string{frames.ParamPrompt: p.Custom}
	}
	cfg, err := BuildInitialConfig(params)
	if err != nil {
		return PromptPreview{}, err
	}
	return PromptPreview{SystemPrompt: SystemPrompt, Prompt: cfg.ConversationConfigOverride.Agent.Prompt.Prompt}, nil
}
