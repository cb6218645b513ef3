package clicker

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-clicker/internal/clicker"
	"github.com/vovakirdan/tui-clicker/internal/core"
)

const helpLine = "SPACE click  ↑↓ select  ENTER buy/toggle  ←→ volume  TAB panel  X prestige  ^S save  ^L load  Q quit"

// Render draws the resources column, the active panel and notifications.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	st := g.sess.State()
	w, h := dst.Width(), dst.Height()

	g.drawHeader(dst, st)

	leftW := min(34, w/2)
	y := g.drawResources(dst, st, 2, leftW)
	y = g.drawClickButton(dst, y+1, leftW)
	g.drawPrestige(dst, st, y+1, leftW)

	px := leftW + 1
	g.drawTabs(dst, px, 2)
	dst.DrawHLine(px, 3, w-px, '─')
	bottom := h - 2 - len(g.notices)
	g.drawPanel(dst, st, px, 4, w-px-1, bottom-4)

	for i, n := range g.notices {
		dst.DrawTextColored(1, h-2-len(g.notices)+i, fit(n.text, w-2), n.color)
	}
	dst.DrawTextColored(0, h-1, fit(helpLine, w), core.ColorGray)
}

func (g *Game) drawHeader(dst *core.Screen, st clicker.State) {
	dst.DrawTextColored(1, 0, "CLICKER", core.ColorAccent)
	right := fmt.Sprintf("Prestige Lv %d  x%.2f", st.Prestige.Level, st.Prestige.Multiplier)
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorBrightCyan)
}

func resourceColor(id string) core.Color {
	switch id {
	case clicker.CoinID:
		return core.ColorCoins
	case "gems":
		return core.ColorGems
	case "crystals":
		return core.ColorCrystals
	default:
		return core.ColorWhite
	}
}

// drawResources lists every resource and returns the next free row.
func (g *Game) drawResources(dst *core.Screen, st clicker.State, y, width int) int {
	for _, r := range st.Resources {
		if !r.Unlocked {
			if r.UnlockAt > 0 {
				line := fmt.Sprintf("??? unlocks at %s coins", formatAmount(r.UnlockAt))
				dst.DrawTextColored(1, y, fit(line, width-1), core.ColorLocked)
				y += 2
			}
			continue
		}
		name := fmt.Sprintf("%-10s", r.Name)
		dst.DrawTextColored(1, y, fit(name+" "+formatAmount(r.Amount), width-1), resourceColor(r.ID))

		mult := st.Prestige.Multiplier
		rates := fmt.Sprintf("  +%s/s  +%s/click", formatAmount(r.PerSecond*mult), formatAmount(r.PerClick*mult))
		dst.DrawTextColored(1, y+1, fit(rates, width-1), core.ColorGray)
		y += 2
	}
	return y
}

func (g *Game) drawClickButton(dst *core.Screen, y, width int) int {
	box := core.NewRect(1, y, width-2, 3)
	dst.DrawBoxColored(box, core.ColorCoins)
	label := "[SPACE] CLICK"
	dst.DrawTextColored(box.X+(box.W-len(label))/2, y+1, label, core.ColorBrightYellow)
	return y + 3
}

func (g *Game) drawPrestige(dst *core.Screen, st clicker.State, y, width int) {
	line := fmt.Sprintf("Prestige at %s coins", formatAmount(st.Prestige.Cost))
	color := core.ColorGray
	if st.Prestige.Unlocked {
		line = "Prestige ready! Press X"
		color = core.ColorBrightGreen
	}
	dst.DrawTextColored(1, y, fit(line, width-1), color)
}

func (g *Game) drawTabs(dst *core.Screen, x, y int) {
	for i, name := range panelNames {
		label := " " + name + " "
		color := core.ColorGray
		if panel(i) == g.panel {
			label = "[" + name + "]"
			color = core.ColorAccent
		}
		dst.DrawTextColored(x, y, label, color)
		x += len(label) + 1
	}
}

type row struct {
	text  string
	color core.Color
}

func (g *Game) drawPanel(dst *core.Screen, st clicker.State, x, y, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}

	var rows []row
	footer := ""
	switch g.panel {
	case panelUpgrades:
		rows = upgradeRows(st)
		if g.cursor < len(st.Upgrades) {
			footer = st.Upgrades[g.cursor].Description
		}
	case panelAchievements:
		rows = achievementRows(st)
		if g.cursor < len(st.Achievements) {
			footer = st.Achievements[g.cursor].Description
		}
	case panelStatistics:
		rows = statisticRows(st)
	case panelSettings:
		rows = g.settingRows(st.Settings)
	}

	if footer != "" && height > 2 {
		height -= 2
		dst.DrawTextColored(x, y+height+1, fit(footer, width), core.ColorGray)
	}

	selectable := g.panel != panelStatistics
	offset := 0
	if selectable && g.cursor >= height {
		offset = g.cursor - height + 1
	}
	for i := offset; i < len(rows) && i-offset < height; i++ {
		prefix := "  "
		if selectable && i == g.cursor {
			prefix = "> "
		}
		dst.DrawTextColored(x, y+i-offset, fit(prefix+rows[i].text, width), rows[i].color)
	}
}

func upgradeRows(st clicker.State) []row {
	rows := make([]row, 0, len(st.Upgrades))
	for _, u := range st.Upgrades {
		target, _ := st.Resource(u.Target)
		level := fmt.Sprintf("Lv %d/%d", u.Level, u.MaxLevel)
		r := row{color: core.ColorDefault}
		switch {
		case u.Maxed():
			r.text = fmt.Sprintf("%-16s %-9s MAX", u.Name, level)
			r.color = core.ColorLocked
		case !u.Unlocked || !target.Unlocked:
			r.text = fmt.Sprintf("%-16s %-9s locked", u.Name, level)
			r.color = core.ColorLocked
		default:
			r.text = fmt.Sprintf("%-16s %-9s %s %s", u.Name, level, formatAmount(u.Cost), strings.ToLower(target.Name))
			if target.Amount >= u.Cost {
				r.color = core.ColorBrightGreen
			}
		}
		rows = append(rows, r)
	}
	return rows
}

func achievementRows(st clicker.State) []row {
	rows := make([]row, 0, len(st.Achievements))
	for _, a := range st.Achievements {
		if a.Unlocked {
			rows = append(rows, row{
				text:  fmt.Sprintf("✓ %-20s +%s", a.Name, formatAmount(a.Reward)),
				color: core.ColorGreen,
			})
			continue
		}
		progress := min(clicker.Progress(st, a), a.Requirement)
		rows = append(rows, row{
			text:  fmt.Sprintf("  %-20s %s/%s", a.Name, formatAmount(progress), formatAmount(a.Requirement)),
			color: core.ColorDefault,
		})
	}
	return rows
}

func statisticRows(st clicker.State) []row {
	s := st.Statistics
	rows := []row{
		{text: "Total clicks       " + humanize.Comma(s.TotalClicks)},
		{text: "Time played        " + formatPlayed(s.TimePlayed)},
		{text: "Upgrades purchased " + humanize.Comma(s.UpgradesPurchased)},
		{text: "Prestiges          " + humanize.Comma(s.PrestigeCount)},
		{text: fmt.Sprintf("Achievements       %d/%d", st.UnlockedAchievements(), len(st.Achievements))},
		{text: "Last save          " + formatLastSave(st.LastSave)},
	}
	for _, r := range st.Resources {
		if !r.Unlocked {
			continue
		}
		rows = append(rows, row{
			text:  fmt.Sprintf("%-10s best %s  earned %s", r.Name, formatAmount(s.HighestResource[r.ID]), formatAmount(s.TotalResources[r.ID])),
			color: resourceColor(r.ID),
		})
	}
	return rows
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func volumeBar(v float64) string {
	n := int(v*10 + 0.5)
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", n), strings.Repeat(" ", 10-n), int(v*100+0.5))
}

func (g *Game) settingRows(s clicker.Settings) []row {
	reset := row{text: "Reset progress", color: core.ColorOrange}
	if g.confirmReset {
		reset.text = "Reset progress? ENTER to confirm"
		reset.color = core.ColorBrightRed
	}
	return []row{
		{text: "Sound          " + onOff(s.SoundEnabled)},
		{text: "Music          " + onOff(s.MusicEnabled)},
		{text: "Notifications  " + onOff(s.NotificationsEnabled)},
		{text: "Autosave       " + onOff(s.AutoSaveEnabled)},
		{text: "Sound volume   " + volumeBar(s.SoundVolume)},
		{text: "Music volume   " + volumeBar(s.MusicVolume)},
		{text: "Reset settings"},
		reset,
	}
}
