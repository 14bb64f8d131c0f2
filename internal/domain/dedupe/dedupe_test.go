package dedupe_test

import (
	"testing"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/dedupe"
	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/sport"
	"github.com/javy001/trainingplanner/internal/domain/units"
	. "github.com/smartystreets/goconvey/convey"
)

func record(id string, start time.Time, minutes int, s sport.Sport, miles float64, provider string) model.ExternalWorkoutRecord {
	return model.ExternalWorkoutRecord{
		ExternalID:     id,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
		Sport:          s,
		DistanceMeters: units.MilesToMeters(miles),
		SourceProvider: provider,
	}
}

func TestDedupe(t *testing.T) {
	Convey("Given a deduper with the default tolerance", t, func() {
		d := dedupe.NewBatchDeduper()
		monday := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)

		Convey("When two providers report the same run", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.0, "Strava"),
				record("b", monday.Add(5*time.Minute), 57, sport.Running, 5.02, "Garmin"),
			}
			out := d.Dedupe(recs)

			Convey("Then only the first record should survive", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].ExternalID, ShouldEqual, "a")
			})
		})

		Convey("When distances differ beyond the tolerance", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.0, "Strava"),
				record("b", monday.Add(5*time.Minute), 60, sport.Running, 5.06, "Garmin"),
			}

			Convey("Then both should survive", func() {
				So(len(d.Dedupe(recs)), ShouldEqual, 2)
			})
		})

		Convey("When distances differ by exactly the tolerance", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.0, "Strava"),
				record("b", monday.Add(5*time.Minute), 60, sport.Running, 5.05, "Garmin"),
			}

			Convey("Then the boundary should count as a duplicate", func() {
				So(len(d.Dedupe(recs)), ShouldEqual, 1)
			})
		})

		Convey("When the sports differ", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.0, "Strava"),
				record("b", monday.Add(5*time.Minute), 60, sport.Cycling, 5.0, "Garmin"),
			}

			Convey("Then both should survive", func() {
				So(len(d.Dedupe(recs)), ShouldEqual, 2)
			})
		})

		Convey("When the days differ", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.0, "Strava"),
				record("b", monday.AddDate(0, 0, 1), 60, sport.Running, 5.0, "Garmin"),
			}

			Convey("Then both should survive", func() {
				So(len(d.Dedupe(recs)), ShouldEqual, 2)
			})
		})

		Convey("When durations wildly differ but distances agree", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.0, "Strava"),
				record("b", monday.Add(2*time.Minute), 90, sport.Running, 5.01, "Garmin"),
			}

			Convey("Then duration should not split the duplicate group", func() {
				So(len(d.Dedupe(recs)), ShouldEqual, 1)
			})
		})

		Convey("When a chain of records each sits within tolerance of the first", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Running, 5.00, "Strava"),
				record("b", monday.Add(1*time.Minute), 60, sport.Running, 5.04, "Garmin"),
				record("c", monday.Add(2*time.Minute), 60, sport.Running, 5.05, "Health"),
			}
			out := d.Dedupe(recs)

			Convey("Then comparisons run against accepted records only", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].ExternalID, ShouldEqual, "a")
			})
		})

		Convey("When the batch is empty", func() {
			So(d.Dedupe(nil), ShouldBeEmpty)
		})
	})

	Convey("Given a deduper with a custom tolerance", t, func() {
		d := dedupe.NewBatchDeduper(dedupe.WithDistanceTolerance(0.5))
		monday := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)

		Convey("Then the wider tolerance should merge farther records", func() {
			recs := []model.ExternalWorkoutRecord{
				record("a", monday, 60, sport.Cycling, 20.0, "Strava"),
				record("b", monday.Add(3*time.Minute), 62, sport.Cycling, 20.4, "Garmin"),
			}
			So(len(d.Dedupe(recs)), ShouldEqual, 1)
		})
	})
}
