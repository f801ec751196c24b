package main

import (
	"fmt"
	"os"

	calc "github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_crossover <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine, err := calc.NewProjectionEngineForConfig(cfg)
	if err != nil {
		panic(err)
	}
	res, err := engine.RunScenarios(cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	base := res.Baseline.Projection
	header := "Index,Year,Baseline"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_Total,S%d_Gap", i+1, i+1)
	}
	fmt.Println(header)

	for idx := range base.Total {
		row := fmt.Sprintf("%d,%d,%d", idx, base.Years[idx], base.Total[idx])
		for _, s := range res.Scenarios {
			if idx >= len(s.Projection.Total) {
				row += ",,"
				continue
			}
			total := s.Projection.Total[idx]
			row += fmt.Sprintf(",%d,%d", total, total-base.Total[idx])
		}
		fmt.Println(row)
	}

	fmt.Println()
	for _, s := range res.Scenarios {
		cr, err := calc.CalculateCrossover(base, s.Projection)
		if cr == nil {
			fmt.Printf("%s: never ahead, err=%v\n", s.Name, err)
			continue
		}
		fmt.Printf("%s: ahead from %d (%s), gap=%d\n", s.Name, cr.Year, cr.CalendarYear().StringFixed(2), cr.Gap)
	}
}
