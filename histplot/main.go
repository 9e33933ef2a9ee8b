package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	triplet "github.com/neutron-exp/tripletsim_go/pkg"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <monitor-dat-file>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		title  = flag.String("title", "", "plot title")
		output = flag.String("output", "out.png", "output file")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	p := plot.New()
	p.Title.Text = *title

	var hists []*hbook.H1D
	for _, filename := range flag.Args() {
		monitor, err := triplet.ReadDat(filename)
		if err != nil {
			log.Fatal(err)
		}
		if p.X.Label.Text == "" {
			p.X.Label.Text = monitor.XLabel
			p.Y.Label.Text = monitor.YLabel
		}
		hists = append(hists, makeHist(monitor))
	}

	for i, hist := range hists {
		lineColor := color.RGBA{A: 255}
		switch i {
		case 1:
			lineColor = color.RGBA{G: 255, A: 255}
		case 2:
			lineColor = color.RGBA{B: 255, A: 255}
		case 3:
			lineColor = color.RGBA{R: 255, B: 127, G: 127, A: 255}
		}

		h := hplot.NewH1D(hist)
		h.FillColor = nil
		h.LineStyle.Color = lineColor
		h.Infos.Style = hplot.HInfoNone

		p.Add(h)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
}

func makeHist(monitor triplet.MonitorData) *hbook.H1D {
	nbins := len(monitor.Weights)
	hist := hbook.NewH1D(nbins, monitor.XMin, monitor.XMax)
	width := (monitor.XMax - monitor.XMin) / float64(nbins)
	for i, w := range monitor.Weights {
		x := monitor.XMin + (float64(i)+0.5)*width
		hist.Fill(x, w)
	}
	return hist
}
