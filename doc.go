/*
Package crony analyses crontabs: it parses each line, classifies it, and lists
the times at which its job fires within a window.

# Installation

To download the package, run:

	go get github.com/its-lee/crony

Import it in your program as:

	import "github.com/its-lee/crony"

It requires Go 1.25 or later. The command line tool lives in cmd/crony.

# Usage

An Analyser walks the lines of a crontab and reports, in line order, every job
that fires at least once within the closed window [begin, end]:

	a := crony.NewAnalyser()
	jobs, err := a.Analyse(lines, begin, end)
	if err != nil {
		return err // crony.ErrInvalidWindow
	}
	for _, jo := range jobs {
		fmt.Println(jo.Job.Command, len(jo.Occurrences))
	}

Analyser.Jobs returns the same result as a lazy iter.Seq; a caller that stops
ranging early stops the analysis. Lower level building blocks are exported too:

	job := crony.ParseLine("0 * * * * backup")       // classify one line
	schedule, err := crony.ParseStandard("0 9 * * 1-5") // parse a schedule
	seq, err := crony.Occurrences(schedule, begin, end) // enumerate a window
	ok, err := crony.MatchField(crony.FieldDow, "MON-FRI", 3)

# Line classification

Every crontab line is one of:

	Kind         | Meaning
	----         | -------
	LineEnabled  | a schedule followed by a command
	LineDisabled | a '#' followed by a schedule and a command
	LineInvalid  | anything else

Blank lines and environment assignments such as "SHELL=/bin/sh" are
LineInvalid with an Err wrapping ErrNotAJob; an Analyser skips them without
logging. Other invalid lines are skipped and reported through the Logger.
Disabled jobs are skipped unless the Analyser was created with
WithIncludeDisabled(true). Jobs without a single occurrence in the window are
dropped from the result.

# CRON Expression Format

A cron expression represents a set of times, using 5 space-separated fields.

	Field name   | Mandatory? | Allowed values  | Allowed special characters
	----------   | ---------- | --------------  | --------------------------
	Minutes      | Yes        | 0-59            | * / , -
	Hours        | Yes        | 0-23            | * / , -
	Day of month | Yes        | 1-31            | * / , - ?
	Month        | Yes        | 1-12 or JAN-DEC | * / , - ?
	Day of week  | Yes        | 0-7 or SUN-SAT  | * / , - ?

Both 0 and 7 mean Sunday. Month and Day-of-week field values are case
insensitive.  "SUN", "Sun", and "sun" are equally accepted.

# Special Characters

Asterisk ( * )

The asterisk indicates that the cron expression will match for all values of the
field; e.g., using an asterisk in the 4th field (month) would indicate every
month.

Slash ( / )

Slashes are used to describe increments of ranges. For example 3-59/15 in the
1st field (minutes) would indicate the 3rd minute of the hour and every 15
minutes thereafter. The form "*\/..." is equivalent to the form "first-last/...",
that is, an increment over the largest possible range of the field.  The form
"N/..." is accepted as meaning "N-MAX/...", that is, starting at N, use the
increment until the end of that specific range.  It does not wrap around.

Comma ( , )

Commas are used to separate items of a list. For example, using "MON,WED,FRI" in
the 5th field (day of week) would mean Mondays, Wednesdays and Fridays. Empty
items, as in "1,,2", are rejected.

Hyphen ( - )

Hyphens are used to define ranges. For example, 9-17 would indicate every
hour between 9am and 5pm inclusive.

Question mark ( ? )

Question mark may be used instead of '*' in the day-of-month and day-of-week
fields. Anywhere else it is rejected.

# Day of month and day of week

When both the day-of-month and the day-of-week fields are restricted, a day
matches if either field matches: "0 0 1 * 0" fires on the 1st of each month and
on every Sunday. When either field is '*' (or '?'), both must match. A stepped
wildcard such as "*\/2" counts as restricted.

# Predefined schedules

You may use one of several pre-defined schedules in place of a cron expression.

	Entry                  | Description                                | Equivalent To
	-----                  | -----------                                | -------------
	@yearly (or @annually) | Run once a year, midnight, Jan. 1st        | 0 0 1 1 *
	@monthly               | Run once a month, midnight, first of month | 0 0 1 * *
	@weekly                | Run once a week, midnight between Sat/Sun  | 0 0 * * 0
	@daily (or @midnight)  | Run once a day, midnight                   | 0 0 * * *
	@hourly                | Run once an hour, beginning of hour        | 0 * * * *
	@reboot                | Run at startup                             | (never in a window)

# Windows

Both ends of a window are inclusive. The beginning is floored to its minute,
so a window starting at 10:00:30 still reports a job firing at 10:00. Times are
interpreted as wall clock readings in the location of begin.

# Time zones

Jobs scheduled during a daylight-savings leap-ahead gap are skipped for that
day, and jobs in a repeated hour fire for both readings of the wall clock.
Occurrences are always strictly ascending.

# Error Handling

Errors wrap one of the sentinels below and can be tested with errors.Is:

	ErrInvalidSchedule     - malformed schedule or line
	ErrInvalidFieldSyntax  - malformed field expression (see FieldError)
	ErrNotAJob             - blank line or environment assignment
	ErrInvalidWindow       - end precedes begin

# Thread Safety

Parsers, schedules and Analysers are immutable once built and may be shared
between goroutines. AnalysisHooks are called on the goroutine that ranges over
the result.

# Logging

An Analyser reports skipped lines through a Logger. PrintfLogger adapts the
standard library log package and logs errors only; VerbosePrintfLogger also
logs skipped lines; NewSlogLogger adapts log/slog.

	a := crony.NewAnalyser(
		crony.WithLogger(crony.VerbosePrintfLogger(log.New(os.Stderr, "crony: ", 0))))
*/
package crony
