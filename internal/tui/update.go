package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "g":
			m.gridlines = !m.gridlines
			m.status = fmt.Sprintf("gridlines: %v", m.gridlines)
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPaths([]string{it.path})
				}
			}
		case "up":
			m.panLat += m.panStep()
		case "down":
			m.panLat -= m.panStep()
		case "left":
			m.panLon -= m.panStep()
		case "right":
			m.panLon += m.panStep()
		}
	case tea.MouseMsg:
		// track hover over map area; layout math must match View
		sidebarWidth := 0
		if m.showSidebar {
			sidebarWidth = 28
		}
		headerHeight := 1
		footerHeight := 2
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 4 {
			contentHeight = 4
		}
		contentWidth := max(10, m.width)

		mapWidth := contentWidth - sidebarWidth - 1
		if mapWidth < 10 {
			mapWidth = 10
		}
		mapHeight := contentHeight
		mapOriginX := sidebarWidth
		if m.showSidebar {
			mapOriginX++
		}
		mapOriginY := headerHeight

		cx, cy := msg.X, msg.Y
		if cx >= mapOriginX && cx < mapOriginX+mapWidth && cy >= mapOriginY && cy < mapOriginY+mapHeight {
			m.hovering = true
			if lon, lat, ok := m.cellToLonLat(cx-mapOriginX, cy-mapOriginY, mapWidth, mapHeight); ok {
				m.hoverHasGeo = true
				m.hoverLon = lon
				m.hoverLat = lat
			} else {
				m.hoverHasGeo = false
			}
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

// panStep is one arrow-key pan in degrees, a tenth of the visible span.
func (m Model) panStep() float64 {
	view, ok := m.viewExtent()
	if !ok {
		return 1
	}
	return view.Width() / 10
}

// inspect pops up the site nearest the viewport center (hover position when
// the mouse is over the map).
func (m *Model) inspect() {
	if m.siteIdx == nil || m.siteIdx.Count() == 0 {
		m.inspectPopup = "no sites loaded"
		m.status = m.inspectPopup
		return
	}
	lon, lat := m.hoverLon, m.hoverLat
	if !m.hoverHasGeo {
		view, ok := m.viewExtent()
		if !ok {
			return
		}
		lon = (view.Left + view.Right) / 2
		lat = (view.Bottom + view.Top) / 2
	}
	entry, ok := m.siteIdx.Nearest(lon, lat)
	if !ok {
		m.inspectPopup = "no site nearby"
		m.status = m.inspectPopup
		return
	}
	name := entry.Name
	if name == "" {
		name = "<unnamed>"
	}
	meta := []string{
		fmt.Sprintf("site: %s", name),
		fmt.Sprintf("mode: %s", entry.Mode),
		fmt.Sprintf("anchor: lon=%.5f lat=%.5f", entry.Lon, entry.Lat),
		fmt.Sprintf("box: %s", entry.Box),
		fmt.Sprintf("sites indexed: %d", m.siteIdx.Count()),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup (esc to close)"
}
