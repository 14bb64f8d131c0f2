package reconcile_test

import (
	"testing"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/reconcile"
	"github.com/javy001/trainingplanner/internal/domain/sport"
	"github.com/javy001/trainingplanner/internal/domain/units"
	. "github.com/smartystreets/goconvey/convey"
)

var monday = time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)

func record(id string, start time.Time, hours float64, s sport.Sport, miles float64, provider string) model.ExternalWorkoutRecord {
	return model.ExternalWorkoutRecord{
		ExternalID:     id,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(hours * float64(time.Hour))),
		Sport:          s,
		DistanceMeters: units.MilesToMeters(miles),
		SourceProvider: provider,
	}
}

func workout(id string, date time.Time, s sport.Sport, hours, miles float64, notes string) model.Workout {
	w := model.Workout{
		ID:            id,
		Date:          date,
		Sport:         s,
		DurationHours: hours,
		DistanceMiles: miles,
		Notes:         notes,
	}
	w.Normalize()
	return w
}

// applied mirrors what a store would hold after applying the upserts,
// used to verify idempotence.
func applied(local []model.Workout, res reconcile.Result) []model.Workout {
	out := make([]model.Workout, len(local))
	copy(out, local)
	next := 0
	for _, up := range res.Upserts {
		switch up.Kind {
		case model.UpsertInsert:
			w := up.Workout
			if w.ID == "" {
				w.ID = time.Now().Format("20060102150405") + string(rune('a'+next))
				next++
			}
			out = append(out, w)
		case model.UpsertUpdate:
			for i := range out {
				if out[i].ID == up.ID {
					up.Fields.Apply(&out[i])
				}
			}
		}
	}
	return out
}

func TestReconcileInsert(t *testing.T) {
	Convey("Given an empty local store and one external record", t, func() {
		m := reconcile.NewMatcher()
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Running, 5.0, "Strava"),
		}

		res := m.Reconcile(recs, nil)

		Convey("Then one insert should be produced", func() {
			So(res.Imported, ShouldEqual, 1)
			So(res.Inserted, ShouldEqual, 1)
			So(res.Updated, ShouldEqual, 0)
			So(len(res.Upserts), ShouldEqual, 1)
			So(res.Upserts[0].Kind, ShouldEqual, model.UpsertInsert)
		})

		Convey("And the inserted workout should be built from the record", func() {
			w := res.Upserts[0].Workout
			So(w.Date, ShouldEqual, monday)
			So(w.Sport, ShouldEqual, sport.Running)
			So(w.DurationHours, ShouldAlmostEqual, 1.0, 1e-9)
			So(w.DistanceMiles, ShouldAlmostEqual, 5.0, 1e-9)
			So(w.ExternalSourceID, ShouldEqual, "a")
			So(w.Notes, ShouldEqual, "Imported from Health. Source: Strava")
		})
	})
}

func TestReconcileUpdate(t *testing.T) {
	Convey("Given a matching local workout with blank notes", t, func() {
		m := reconcile.NewMatcher()
		local := []model.Workout{
			workout("w1", monday.Add(-time.Hour), sport.Running, 1.0, 5.0, ""),
		}
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.02, sport.Running, 5.01, "Garmin Connect"),
		}

		res := m.Reconcile(recs, local)

		Convey("Then one update should overwrite the local workout", func() {
			So(res.Imported, ShouldEqual, 1)
			So(res.Updated, ShouldEqual, 1)
			So(len(res.Upserts), ShouldEqual, 1)

			up := res.Upserts[0]
			So(up.Kind, ShouldEqual, model.UpsertUpdate)
			So(up.ID, ShouldEqual, "w1")
			So(*up.Fields.DurationHours, ShouldAlmostEqual, 1.02, 1e-9)
			So(*up.Fields.DistanceMiles, ShouldAlmostEqual, 5.01, 1e-9)
			So(*up.Fields.Date, ShouldEqual, monday)
			So(*up.Fields.ExternalSourceID, ShouldEqual, "a")
			So(*up.Fields.Notes, ShouldEqual, "Imported from Health. Source: Garmin")
		})
	})

	Convey("Given a matching local workout with existing notes", t, func() {
		m := reconcile.NewMatcher()
		local := []model.Workout{
			workout("w1", monday, sport.Running, 1.0, 5.0, "felt great"),
		}
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Running, 5.0, "MyApp"),
		}

		res := m.Reconcile(recs, local)

		Convey("Then the annotation should be prepended above the notes", func() {
			So(*res.Upserts[0].Fields.Notes, ShouldEqual, "Imported from Health. Source: MyApp\n\nfelt great")
		})
	})
}

func TestDurationToleranceBoundary(t *testing.T) {
	Convey("Given an external record of exactly one hour", t, func() {
		m := reconcile.NewMatcher()
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Running, 5.0, "Strava"),
		}

		Convey("When the local duration is exactly 5% shorter", func() {
			local := []model.Workout{workout("w1", monday, sport.Running, 0.95, 5.0, "")}
			res := m.Reconcile(recs, local)

			Convey("Then the inclusive boundary should match", func() {
				So(res.Updated, ShouldEqual, 1)
			})
		})

		Convey("When the local duration is just past 5% shorter", func() {
			local := []model.Workout{workout("w1", monday, sport.Running, 0.9499, 5.0, "")}
			res := m.Reconcile(recs, local)

			Convey("Then no match should occur and an insert is produced", func() {
				So(res.Updated, ShouldEqual, 0)
				So(res.Inserted, ShouldEqual, 1)
			})
		})

		Convey("When both durations are near zero", func() {
			zeroRec := []model.ExternalWorkoutRecord{
				record("z", monday, 0, sport.Running, 5.0, "Strava"),
			}
			local := []model.Workout{workout("w1", monday, sport.Running, 0.0004, 5.0, "")}
			res := m.Reconcile(zeroRec, local)

			Convey("Then the floor should keep the comparison sane and match", func() {
				So(res.Updated, ShouldEqual, 1)
			})
		})
	})
}

func TestDistanceToleranceBoundary(t *testing.T) {
	Convey("Given a matching duration but varying distances", t, func() {
		m := reconcile.NewMatcher()
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Running, 5.0, "Strava"),
		}

		Convey("Then 0.05 miles apart should match", func() {
			local := []model.Workout{workout("w1", monday, sport.Running, 1.0, 5.05, "")}
			So(m.Reconcile(recs, local).Updated, ShouldEqual, 1)
		})

		Convey("And 0.06 miles apart should not", func() {
			local := []model.Workout{workout("w1", monday, sport.Running, 1.0, 5.06, "")}
			So(m.Reconcile(recs, local).Updated, ShouldEqual, 0)
		})
	})
}

func TestIdempotence(t *testing.T) {
	Convey("Given a batch reconciled and applied once", t, func() {
		m := reconcile.NewMatcher()
		local := []model.Workout{
			workout("w1", monday, sport.Running, 1.0, 5.0, "tempo"),
			workout("w2", monday.AddDate(0, 0, 1), sport.Cycling, 2.0, 30.0, ""),
		}
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.01, sport.Running, 5.02, "Strava"),
			record("b", monday.AddDate(0, 0, 2), 0.5, sport.Swimming, 1.0, "Garmin"),
		}

		first := m.Reconcile(recs, local)
		after := applied(local, first)

		Convey("Then the first pass should import both records", func() {
			So(first.Imported, ShouldEqual, 2)
			So(first.Updated, ShouldEqual, 1)
			So(first.Inserted, ShouldEqual, 1)
		})

		Convey("And a second pass over the applied store should be a no-op", func() {
			second := m.Reconcile(recs, after)
			So(second.Imported, ShouldEqual, 0)
			So(second.Upserts, ShouldBeEmpty)
		})
	})
}

func TestConsumedLocalWorkouts(t *testing.T) {
	Convey("Given one local workout and two tolerable external records", t, func() {
		m := reconcile.NewMatcher()
		local := []model.Workout{
			workout("w1", monday, sport.Running, 1.0, 5.0, ""),
		}
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Running, 5.0, "Strava"),
			record("b", monday.Add(time.Hour), 1.01, sport.Running, 5.01, "Garmin"),
		}

		res := m.Reconcile(recs, local)

		Convey("Then the local workout should be consumed by the first record only", func() {
			So(res.Updated, ShouldEqual, 1)
			So(res.Inserted, ShouldEqual, 1)
			So(res.Upserts[0].Kind, ShouldEqual, model.UpsertUpdate)
			So(res.Upserts[1].Kind, ShouldEqual, model.UpsertInsert)
		})
	})
}

func TestLinkedWorkoutsStayLinked(t *testing.T) {
	Convey("Given a local workout already linked to one of the records", t, func() {
		m := reconcile.NewMatcher()
		// User edited the distance after the original import of "x".
		local := []model.Workout{
			workout("w1", monday, sport.Running, 1.0, 5.04, ""),
		}
		local[0].ExternalSourceID = "x"
		recs := []model.ExternalWorkoutRecord{
			record("x", monday, 1.0, sport.Running, 5.0, "Strava"),
			record("y", monday.Add(time.Hour), 1.0, sport.Running, 5.08, "Garmin"),
		}

		res := m.Reconcile(recs, local)

		Convey("Then another record should not steal the linked workout", func() {
			So(res.Updated, ShouldEqual, 0)
			So(res.Inserted, ShouldEqual, 1)
			So(res.Upserts[0].Kind, ShouldEqual, model.UpsertInsert)
			So(res.Upserts[0].Workout.ExternalSourceID, ShouldEqual, "y")
		})

		Convey("And a second pass over the applied store should be a no-op", func() {
			again := m.Reconcile(recs, applied(local, res))
			So(again.Imported, ShouldEqual, 0)
			So(len(again.Upserts), ShouldEqual, 0)
		})
	})
}

func TestFirstCandidateWins(t *testing.T) {
	Convey("Given two local workouts both within tolerance", t, func() {
		m := reconcile.NewMatcher()
		local := []model.Workout{
			workout("w1", monday, sport.Running, 1.0, 5.0, ""),
			workout("w2", monday, sport.Running, 1.01, 5.01, ""),
		}
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Running, 5.0, "Strava"),
		}

		res := m.Reconcile(recs, local)

		Convey("Then the first workout in iteration order should be chosen", func() {
			So(res.Upserts[0].ID, ShouldEqual, "w1")
		})
	})
}

func TestUnsupportedSportSkipped(t *testing.T) {
	Convey("Given a record whose sport failed to map", t, func() {
		m := reconcile.NewMatcher()
		recs := []model.ExternalWorkoutRecord{
			record("a", monday, 1.0, sport.Unknown, 5.0, "Strava"),
			record("b", monday, 1.0, sport.Running, 5.0, "Strava"),
		}

		res := m.Reconcile(recs, nil)

		Convey("Then it should be skipped without counting", func() {
			So(res.Imported, ShouldEqual, 1)
			So(len(res.Upserts), ShouldEqual, 1)
			So(res.Upserts[0].Workout.ExternalSourceID, ShouldEqual, "b")
		})
	})
}

func TestProviderDisplayName(t *testing.T) {
	Convey("Given provider names from the source", t, func() {
		cases := map[string]string{
			"Strava":         "Strava",
			"strava iOS":     "Strava",
			"Garmin Connect": "Garmin",
			"Polar Flow":     "Polar Flow",
			"":               "",
		}

		Convey("Then well-known names should normalize", func() {
			for in, want := range cases {
				So(reconcile.ProviderDisplayName(in), ShouldEqual, want)
			}
		})
	})
}
