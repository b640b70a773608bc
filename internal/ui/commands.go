package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/ui/command"
)

// linkOpenedMsg reports the outcome of launching a link.
type linkOpenedMsg struct {
	uri string
	err error
}

func (m *Model) openLink(uri string) tea.Cmd {
	m.errMsg = ""
	if !m.openLinks {
		m.message = "Link: " + uri
		return nil
	}
	m.message = "Opening " + uri
	opener := m.opener
	return m.bus.Execute(command.Request{
		ID:    "open-link",
		Label: uri,
		Handler: func() tea.Cmd {
			return func() tea.Msg {
				return linkOpenedMsg{uri: uri, err: opener(uri)}
			}
		},
	})
}

func (m *Model) handleLinkOpenedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(linkOpenedMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.log.Error(result.err, "open link failed", "uri", result.uri)
		events.Action.Error(result.err)
		return nil
	}
	m.message = "Opened " + result.uri
	events.Action.Success(m.message)
	return nil
}

func openURL(uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.Command("xdg-open", uri)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return cmd.Process.Release()
}
