package crony

import (
	"fmt"
	"testing"
	"time"
)

// BenchmarkParseStandard benchmarks parsing standard cron expressions.
func BenchmarkParseStandard(b *testing.B) {
	specs := []string{
		"* * * * *",
		"0 0 * * *",
		"*/5 * * * *",
		"0 9-17 * * 1-5",
		"30 4 1,15 * *",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		spec := specs[i%len(specs)]
		_, err := ParseStandard(spec)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseCached benchmarks repeated parsing through a caching parser.
func BenchmarkParseCached(b *testing.B) {
	p := NewParser().WithCache()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse("0 9-17 * * 1-5"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseDescriptor benchmarks parsing predefined schedules.
func BenchmarkParseDescriptor(b *testing.B) {
	descriptors := []string{"@yearly", "@monthly", "@weekly", "@daily", "@hourly"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseStandard(descriptors[i%len(descriptors)]); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNext benchmarks finding the next activation of a simple schedule.
func BenchmarkNext(b *testing.B) {
	sched, _ := ParseStandard("0 * * * *")
	now := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sched.Next(now)
	}
}

// BenchmarkNextSparse benchmarks a schedule that skips whole months.
func BenchmarkNextSparse(b *testing.B) {
	sched, _ := ParseStandard("0 0 29 2 *")
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sched.Next(now)
	}
}

// BenchmarkBetween benchmarks enumerating a year of hourly activations.
func BenchmarkBetween(b *testing.B) {
	sched, _ := ParseStandard("0 * * * *")
	begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := begin.AddDate(1, 0, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Between(sched, begin, end); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAnalyse benchmarks crontabs of increasing size over one day.
func BenchmarkAnalyse(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			lines := make([]string, n)
			for i := range lines {
				lines[i] = fmt.Sprintf("%d %d * * * job-%d", i%60, i%24, i)
			}
			a := NewAnalyser(WithLogger(DiscardLogger), WithParser(NewParser().WithCache()))
			begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			end := begin.Add(24 * time.Hour)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := a.Analyse(lines, begin, end); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
