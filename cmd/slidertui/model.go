package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gonewx/vslider/pkg/config"
	"github.com/gonewx/vslider/pkg/render"
	"github.com/gonewx/vslider/pkg/slider"
)

// 布局：标题占 headerRows 行，滑动条从 leftMargin 列开始，底部留 footerRows 行
const (
	headerRows = 2
	footerRows = 3
	leftMargin = 2
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7da1ae"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#dddfeb"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// keyMap 终端按键绑定
type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "increase"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "decrease"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpLine 生成帮助行
func (k keyMap) helpLine() string {
	bindings := []key.Binding{k.Up, k.Down, k.Quit}
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "mouse drag")
	return strings.Join(parts, " • ")
}

// model 终端宿主：一个滑动条，每个字符单元对应 1x2 像素
type model struct {
	cfg    config.SliderConfig
	widget *slider.Widget
	keys   keyMap

	dragging bool
	changes  int // 用户交互产生的进度变化次数
}

func newModel(cfg config.SliderConfig, widget *slider.Widget) *model {
	m := &model{
		cfg:    cfg,
		widget: widget,
		keys:   defaultKeyMap(),
	}
	widget.SetOnProgressChangeListener(func(progress float64) {
		m.changes++
		log.Printf("[SliderTUI] %s progress: %.3f", cfg.ID, progress)
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case !m.widget.Enabled():
			// 禁用的控件不可获得焦点，方向键不生效
		case key.Matches(msg, m.keys.Up):
			m.widget.HandleKey(slider.KeyUp)
		case key.Matches(msg, m.keys.Down):
			m.widget.HandleKey(slider.KeyDown)
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// layout 按终端尺寸测量控件
// 宽度按列、高度按半块像素（每行两个像素）
func (m *model) layout(cols, rows int) {
	available := (rows - headerRows - footerRows) * 2
	widthSpec, heightSpec := slider.HostSpecs(m.cfg.Width, m.cfg.Height, available)

	width, height := m.widget.Measure(widthSpec, heightSpec, m.cfg.MinWidth, 0)
	m.widget.SetBounds(min(width, max(0, cols-leftMargin)), height)
}

// handleMouse 将鼠标事件换算为控件局部坐标
// 按下必须落在控件内；拖动期间的移动和释放即使离开控件也发送给控件
func (m *model) handleMouse(msg tea.MouseMsg) {
	localY := m.localY(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.contains(msg.X, msg.Y) {
			return
		}
		m.dragging = m.widget.HandlePointer(slider.PointerEvent{Action: slider.PointerPress, Y: localY})
	case tea.MouseActionMotion:
		if m.dragging {
			m.widget.HandlePointer(slider.PointerEvent{Action: slider.PointerMove, Y: localY})
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.widget.HandlePointer(slider.PointerEvent{Action: slider.PointerRelease, Y: localY})
			m.dragging = false
		}
	}
}

// localY 终端行号换算为控件像素坐标（取字符单元中心）
func (m *model) localY(row int) float64 {
	return float64(row-headerRows)*2 + 1
}

func (m *model) contains(col, row int) bool {
	width, height := m.widget.Size()
	return col >= leftMargin && col < leftMargin+width &&
		row >= headerRows && row < headerRows+render.HalfBlockRows(height)
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.cfg.Label))
	b.WriteString("\n\n")

	img, err := render.Rasterize(m.widget, nil)
	if err != nil {
		b.WriteString(disabledStyle.Render("(terminal too small)"))
		b.WriteString("\n")
	} else {
		indent := strings.Repeat(" ", leftMargin)
		for _, line := range strings.Split(render.HalfBlock(img, nil), "\n") {
			b.WriteString(indent)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	status := fmt.Sprintf(config.DefaultLabelFormat, m.widget.Progress()*100)
	if m.widget.Enabled() {
		b.WriteString(labelStyle.Render(status))
	} else {
		b.WriteString(disabledStyle.Render(status + " (disabled)"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.keys.helpLine()))
	return b.String()
}
