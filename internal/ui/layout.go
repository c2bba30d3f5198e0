package ui

// Default terminal size used before the first tea.WindowSizeMsg (and in tests).
const (
	defaultWidth  = 100
	defaultHeight = 32
)

const (
	minPaneWidth  = 30
	paneChrome    = 4 // border + horizontal padding
	headerLines   = 1
	statusLines   = 1
	paneBorderRow = 2
)

// splitWidths divides total columns between the layers pane (3/5) and the
// settings pane. Neither pane is narrower than minPaneWidth unless total is.
func splitWidths(total int) (left, right int) {
	if total < 2*minPaneWidth {
		left = total / 2
		return left, total - left
	}
	left = total * 3 / 5
	if total-left < minPaneWidth {
		left = total - minPaneWidth
	}
	return left, total - left
}

// bodyHeight is the row budget for pane content after the header, status
// line and pane borders.
func bodyHeight(total int) int {
	h := total - headerLines - statusLines - paneBorderRow
	if h < 1 {
		return 1
	}
	return h
}
