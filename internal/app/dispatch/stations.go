// internal/app/dispatch/stations.go
package dispatch

import (
	"context"

	"go.uber.org/zap"
)

// ToggleStationActivation flips a station's activation for one grade.
// Deactivation is a single-document update. Activation adds the grade to
// this station and removes it from every other station in the same
// transaction, keeping the one-station-per-grade invariant in one commit.
func (d *Dispatcher) ToggleStationActivation(ctx context.Context, stationID, gradeID string) (active bool, err error) {
	station, err := d.stations.GetByID(ctx, stationID)
	if err != nil {
		return false, err
	}

	if station.IsActiveForGrade(gradeID) {
		if err := d.stations.RemoveActiveGrade(ctx, stationID, gradeID); err != nil {
			return false, err
		}
		return false, nil
	}

	err = d.inTxn(ctx, func(ctx context.Context) error {
		pulled, err := d.stations.PullGradeFromOthers(ctx, stationID, gradeID)
		if err != nil {
			return err
		}
		if pulled > 0 {
			d.log.Info("grade moved between stations",
				zap.String("station_id", stationID),
				zap.String("grade_id", gradeID),
				zap.Int64("previous_holders", pulled))
		}
		return d.stations.AddActiveGrade(ctx, stationID, gradeID)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
