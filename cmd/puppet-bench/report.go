package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/puppet/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Scene    string
	Seed     uint64
	Entities int
	Draw     bool

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	UpdateTime     Stats
	DrawTime       Stats
	Queued         int64
	Culled         int64
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// PerFrame divides a running total by the number of frames.
func (r *Report) PerFrame(total int64) float64 {
	if r.TotalFrames == 0 {
		return 0
	}
	return float64(total) / float64(r.TotalFrames)
}

const reportTemplate = `
# Scene Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Scene:** {{.Scene}}
- **Seed:** {{.Seed}}
- **Entities:** {{.Entities}}
- **Draw Pass:** {{.Draw}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{- if .Draw}}
- **Draw Time (Frame):**
  - **Avg:** {{.DrawTime.Avg}}
  - **Min:** {{.DrawTime.Min}}
  - **Max:** {{.DrawTime.Max}}
- **Triangles per Frame:** {{printf "%.1f" (.PerFrame .Queued)}} drawn, {{printf "%.1f" (.PerFrame .Culled)}} culled
{{- end}}

## Systems
{{- range .Systems}}
- **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{- end}}

## Memory
| Metric | Start | End | Delta |
|--------|-------|-----|-------|
| HeapAlloc | {{.MemStatsStart.HeapAlloc}} | {{.MemStatsEnd.HeapAlloc}} | {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} |
| TotalAlloc | {{.MemStatsStart.TotalAlloc}} | {{.MemStatsEnd.TotalAlloc}} | {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} |
| Sys | {{.MemStatsStart.Sys}} | {{.MemStatsEnd.Sys}} | {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} |
| NumGC | {{.MemStatsStart.NumGC}} | {{.MemStatsEnd.NumGC}} | {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}} |

Heap at end: {{mb .MemStatsEnd.HeapAlloc}} MiB
{{if .GCPauseMetrics}}
## GC Pauses
- **Total pause:** {{.MemStatsEnd.PauseTotalNs | ns}} across {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}} cycles
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
