package start

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██╗    ███████╗████████╗ █████╗  ██████╗██╗  ██╗
 ██╔══██╗██║    ██╔════╝╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝
 ███████║██║    ███████╗   ██║   ███████║██║     █████╔╝
 ██╔══██║██║    ╚════██║   ██║   ██╔══██║██║     ██╔═██╗
 ██║  ██║██║    ███████║   ██║   ██║  ██║╚██████╗██║  ██╗
 ╚═╝  ╚═╝╚═╝    ╚══════╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "A I   S T A C K"

// bannerMinWidth is the narrowest terminal that fits the full banner.
const bannerMinWidth = 60

// RenderBanner returns the banner styled in the primary color, falling
// back to a single line on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
