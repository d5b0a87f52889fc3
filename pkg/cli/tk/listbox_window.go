package tk

// The number of lines the listing keeps between the currently selected item
// and the top and bottom edges of the window, unless the available height
// is too small or the selected item is near the top or bottom of the list.
var respectDistance = 2

// Determines the index of the first item to show in vertical layout, and
// how many initial lines of that item to crop. The window always includes
// the selected item, and tries to keep respectDistance rows above and below
// it while staying as close to the previous window as it can.
func getVerticalWindow(state ListBoxState, height int) (first, crop int) {
	items, selected, lastFirst := state.Items, state.Selected, state.First
	n := items.Len()
	if selected < 0 {
		selected = 0
	} else if selected >= n {
		selected = n - 1
	}
	selectedHeight := items.Show(selected).CountLines()

	if height <= selectedHeight {
		// The height is not big enough (or just big enough) to fit the
		// selected item. Fit as much of the selected item as we can.
		return selected, 0
	}

	// Determine the minimum amount of space required downwards.
	budget := height - selectedHeight
	var needDown int
	if budget >= 2*respectDistance {
		needDown = respectDistance
	} else {
		// Not enough room for the respect distance on both sides; split
		// the budget in half.
		needDown = budget / 2
	}
	// Calculate how much of the budget the downward direction can actually
	// use.
	useDown := 0
	for i := selected + 1; i < n; i++ {
		useDown += items.Show(i).CountLines()
		if useDown >= budget {
			break
		}
	}
	if needDown > useDown {
		// We reached the last item without using all of needDown.
		needDown = useDown
	}

	budgetUp := budget - needDown

	useUp := 0
	// Extend upwards until the budget is exhausted, item 0 is reached, or
	// the previous window is reached with the respect distance satisfied.
	for i := selected - 1; i >= 0; i-- {
		useUp += items.Show(i).CountLines()
		if useUp >= budgetUp {
			return i, useUp - budgetUp
		}
		if i <= lastFirst && useUp >= respectDistance && useUp+useDown >= budget {
			return i, 0
		}
	}
	return 0, 0
}

// Determines the window to show in horizontal layout. Returns the first
// item to show, the height of each column, and whether a scrollbar may be
// shown.
func getHorizontalWindow(state ListBoxState, padding, width, height int) (int, int, bool) {
	items := state.Items
	n := items.Len()
	// Lower bound of the number of items that can fit in a row.
	perRow := (width + listBoxColGap) / (maxWidth(items, padding, 0, n) + listBoxColGap)
	if perRow == 0 {
		// Items that are too wide are trimmed, so there is at least one
		// item per row.
		perRow = 1
	}
	if height*perRow >= n {
		// All items can fit.
		return 0, (n + perRow - 1) / perRow, false
	}
	// Use the entire available height and show a scrollbar, unless the
	// height is 1, in which case the one line is better used for content.
	scrollbar := false
	if height > 1 {
		scrollbar = true
		height--
	}
	selected, lastFirst := state.Selected, state.First
	// Start with the column containing the selected item, move left until
	// either the width is exhausted or lastFirst has been reached.
	first := selected / height * height
	usedWidth := maxWidth(items, padding, first, first+height)
	for ; first > lastFirst; first -= height {
		usedWidth += maxWidth(items, padding, first-height, first) + listBoxColGap
		if usedWidth > width {
			break
		}
	}
	return first, height, scrollbar
}

func maxWidth(items Items, padding, low, high int) int {
	n := items.Len()
	width := 0
	for i := low; i < high && i < n; i++ {
		w := items.Show(i).Wcswidth()
		if width < w {
			width = w
		}
	}
	return width + 2*padding
}
