package ui

import (
	"github.com/gorustyt/fyne/v2"
	"github.com/gorustyt/fyne/v2/container"
	"github.com/gorustyt/fyne/v2/widget"
	"github.com/gorustyt/manoslider/config"
	"github.com/gorustyt/manoslider/controller"
)

// pairsPerRow is how many label+slider pairs share a grid row.
const pairsPerRow = 4

// Props is the grid of parameter sliders. Slider i drives parameter i.
type Props struct {
	c       *fyne.Container
	sliders []*widget.Slider

	// OnChanged receives every user change. It is not called by Reset.
	OnChanged func(index int, value float64)
	muted     bool
}

func NewProps(layout controller.Layout, cfg config.SliderConfig) *Props {
	p := &Props{c: container.NewGridWithColumns(pairsPerRow * 2)}
	for i := 0; i < layout.Total(); i++ {
		s := widget.NewSlider(cfg.Min, cfg.Max)
		s.Step = cfg.Step
		s.Value = 0
		index := i
		s.OnChanged = func(f float64) {
			if p.muted || p.OnChanged == nil {
				return
			}
			p.OnChanged(index, f)
		}
		p.sliders = append(p.sliders, s)
		p.c.Add(widget.NewLabel(layout.Label(i)))
		p.c.Add(s)
	}
	return p
}

func (p *Props) Len() int { return len(p.sliders) }

func (p *Props) Slider(i int) *widget.Slider { return p.sliders[i] }

// Reset moves every slider back to zero without notifying OnChanged.
func (p *Props) Reset() {
	p.muted = true
	defer func() { p.muted = false }()
	for _, s := range p.sliders {
		s.SetValue(0)
	}
}

func (p *Props) GetRenderObj() fyne.CanvasObject {
	s := container.NewVScroll(p.c)
	s.SetMinSize(fyne.NewSize(100, 220))
	return s
}
