package challenge

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/theme"
	"github.com/ascent-cf/ascent/internal/verify"
)

func (s *ChallengeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch {
	case s.loading:
		content = s.spinner.View() + " " + theme.Subtitle.Render("Fetching today's challenge…")
	case s.failure != "":
		content = renderFailure(s.failure, cw)
	case s.modalOpen:
		content = renderProblemCard(s.problem, cw) + "\n\n" + s.renderModal(cw)
	default:
		content = renderProblemCard(s.problem, cw) + "\n\n" +
			theme.Hint.Render("Solve it on Codeforces, then press v to verify.")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderFailure(msg string, cw int) string {
	lines := []string{
		theme.ErrorText.Render("SYSTEM FAILURE: " + msg),
		"",
		theme.Hint.Render("[r] retry"),
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderProblemCard(p *verify.Problem, cw int) string {
	if p == nil {
		return ""
	}

	band := verify.RatingBand(p.Rating)
	rating := lipgloss.NewStyle().
		Foreground(theme.BandColor(string(band))).
		Bold(true).
		Render(fmt.Sprintf("★ %d", p.Rating))

	header := theme.Title.Render(p.ID) + "  " + rating
	lines := []string{
		header,
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Name),
		theme.Hint.Render(p.Link),
	}

	if len(p.Tags) > 0 {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, theme.Tag.Render(t))
		}
		lines = append(lines, "", strings.Join(tags, " "))
	}

	return components.Card(strings.Join(lines, "\n"), cw)
}

func (s *ChallengeScreen) renderModal(cw int) string {
	var body []string
	body = append(body, theme.Title.Render("VERIFY SOLUTION"), "")

	switch s.machine.State() {
	case verify.StateSubmitting:
		body = append(body, s.spinner.View()+" "+theme.Body.Render("Checking with Codeforces…"))
	case verify.StateSuccess:
		body = append(body,
			theme.SuccessText.Render("Great Job!"),
			theme.Body.Render(s.machine.Outcome().Message),
		)
	default:
		body = append(body, s.timeInput.View())
		if s.inputErr != "" {
			body = append(body, "", theme.ErrorText.Render(s.inputErr))
		}
		if s.machine.State() == verify.StateFailed {
			body = append(body, "", components.Toast(s.machine.Outcome().Message, true),
				theme.Hint.Render("Press Enter to try again."))
		}
	}

	return theme.Modal.
		Width(cw - 2).
		Render(strings.Join(body, "\n"))
}
