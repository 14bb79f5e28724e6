package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/models"
)

var agentUpdateKeys = []string{
	"name", "description", "provider", "model", "temperature",
	"max_tokens", "system_prompt", "default", "active",
}

func (a *App) ListAgents(ctx context.Context) error {
	agents, err := a.agents.List(ctx)
	if err != nil {
		return err
	}
	if len(agents) == 0 {
		fmt.Fprintln(a.out, "No agents yet. Create one with 'newagent'.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPROVIDER\tMODEL\tDEFAULT")
	for _, ag := range agents {
		def := ""
		if ag.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ag.ID, ag.Name, ag.LLMProvider, ag.Model, def)
	}
	return tw.Flush()
}

func (a *App) ShowAgent(ctx context.Context, id string) error {
	ag, err := a.agents.Get(ctx, id)
	if err != nil {
		return err
	}
	printAgent(a, ag)
	return nil
}

func printAgent(a *App, ag *models.Agent) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", ag.ID)
	fmt.Fprintf(tw, "name:\t%s\n", ag.Name)
	if ag.Description != "" {
		fmt.Fprintf(tw, "description:\t%s\n", ag.Description)
	}
	fmt.Fprintf(tw, "provider:\t%s\n", ag.LLMProvider)
	fmt.Fprintf(tw, "model:\t%s\n", ag.Model)
	fmt.Fprintf(tw, "temperature:\t%g\n", ag.Temperature)
	fmt.Fprintf(tw, "max tokens:\t%d\n", ag.MaxTokens)
	fmt.Fprintf(tw, "default:\t%t\n", ag.IsDefault)
	fmt.Fprintf(tw, "active:\t%t\n", ag.IsActive)
	_ = tw.Flush()
	if ag.SystemPrompt != "" {
		fmt.Fprintf(a.out, "system prompt:\n%s\n", ag.SystemPrompt)
	}
}

// NewAgent asks for the agent settings. Blank answers leave the field to the
// server default.
func (a *App) NewAgent(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Agent name", a.out)
	if err != nil {
		return err
	}
	req := models.CreateAgentRequest{Name: name}

	if req.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	provider, err := getSimpleText(a.reader, "LLM provider: openai or ollama (blank for default)", a.out)
	if err != nil {
		return err
	}
	req.LLMProvider = models.LLMProvider(strings.ToLower(provider))
	if req.Model, err = getSimpleText(a.reader, "Model (blank for default)", a.out); err != nil {
		return err
	}

	temperature, err := getSimpleText(a.reader, "Temperature 0-2 (blank for default)", a.out)
	if err != nil {
		return err
	}
	if temperature != "" {
		v, err := parseTemperature(temperature)
		if err != nil {
			return err
		}
		req.Temperature = &v
	}

	maxTokens, err := getSimpleText(a.reader, "Max tokens (blank for default)", a.out)
	if err != nil {
		return err
	}
	if maxTokens != "" {
		v, err := parseMaxTokens(maxTokens)
		if err != nil {
			return err
		}
		req.MaxTokens = &v
	}

	if req.SystemPrompt, err = getMultiline(a.reader, "System prompt (optional)", a.out); err != nil {
		return err
	}
	if req.IsDefault, err = confirm(a.reader, "Make this your default agent?", a.out); err != nil {
		return err
	}

	ag, err := a.agents.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created agent %s (%s).\n", ag.Name, ag.ID)
	return nil
}

// SetAgent applies key=value assignments to an agent.
func (a *App) SetAgent(ctx context.Context, id string, assignments []string) error {
	req, err := parseAgentUpdate(assignments)
	if err != nil {
		return err
	}
	ag, err := a.agents.Update(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated agent %s.\n", ag.Name)
	return nil
}

func (a *App) RemoveAgent(ctx context.Context, id string) error {
	if err := a.agents.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted agent %s.\n", id)
	return nil
}

// parseAgentUpdate turns ["name=Coder", "temperature=0.2"] into a partial
// update. Values may contain '='; unknown keys and bad numbers are
// validation errors.
func parseAgentUpdate(assignments []string) (models.UpdateAgentRequest, error) {
	var req models.UpdateAgentRequest

	for _, as := range assignments {
		key, value, ok := strings.Cut(as, "=")
		if !ok || key == "" {
			return req, client.Invalid("expected key=value, got %q", as)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "name":
			req.Name = &value
		case "description":
			req.Description = &value
		case "provider":
			p := models.LLMProvider(strings.ToLower(value))
			req.LLMProvider = &p
		case "model":
			req.Model = &value
		case "temperature":
			v, err := parseTemperature(value)
			if err != nil {
				return req, err
			}
			req.Temperature = &v
		case "max_tokens":
			v, err := parseMaxTokens(value)
			if err != nil {
				return req, err
			}
			req.MaxTokens = &v
		case "system_prompt":
			req.SystemPrompt = &value
		case "default":
			v, err := strconv.ParseBool(value)
			if err != nil {
				return req, client.Invalid("default must be true or false")
			}
			req.IsDefault = &v
		case "active":
			v, err := strconv.ParseBool(value)
			if err != nil {
				return req, client.Invalid("active must be true or false")
			}
			req.IsActive = &v
		default:
			return req, client.Invalid("unknown agent field %q", key)
		}
	}

	if req.Empty() {
		return req, client.Invalid("nothing to update")
	}
	return req, nil
}

func parseTemperature(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 2 {
		return 0, client.Invalid("temperature must be a number between 0 and 2")
	}
	return v, nil
}

func parseMaxTokens(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, client.Invalid("max tokens must be a positive integer")
	}
	return v, nil
}
