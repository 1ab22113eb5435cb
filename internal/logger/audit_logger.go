// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/golf-edge/internal/models"
)

// AuditLogger provides dedicated audit trail logging. It satisfies the
// ledger observer interface so every placement and settlement is recorded.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// WagerPlaced logs a wager placement event.
func (al *AuditLogger) WagerPlaced(wager models.Wager) {
	fields := logrus.Fields{
		"wager_id":   wager.ID.String(),
		"tournament": wager.Tournament,
		"player":     wager.Player,
		"stake":      wager.Stake,
		"price":      wager.Price,
		"timestamp":  wager.PlacedAt.Unix(),
	}
	if wager.AmericanPrice != nil {
		fields["american_price"] = *wager.AmericanPrice
	}
	al.WithFields(fields).Info("Wager placement recorded")
}

// WagerSettled logs a wager settlement event.
func (al *AuditLogger) WagerSettled(wager models.Wager, bankroll float64) {
	al.WithFields(logrus.Fields{
		"wager_id":   wager.ID.String(),
		"tournament": wager.Tournament,
		"player":     wager.Player,
		"outcome":    string(wager.Outcome),
		"profit":     wager.ProfitOrZero(),
		"bankroll":   bankroll,
	}).Info("Wager settlement recorded")
}

// LogStakingParameterChange logs staking parameter changes.
func (al *AuditLogger) LogStakingParameterChange(parameterName string, oldValue, newValue interface{}, changedBy string) {
	al.WithFields(logrus.Fields{
		"parameter_name": parameterName,
		"old_value":      oldValue,
		"new_value":      newValue,
		"changed_by":     changedBy,
	}).Info("Staking parameter changed")
}

// LogOddsImport logs the outcome of an odds file import.
func (al *AuditLogger) LogOddsImport(path string, rows int, err error) {
	entry := al.WithFields(logrus.Fields{
		"path": path,
		"rows": rows,
	})
	if err != nil {
		entry.WithError(err).Error("Odds import failed")
		return
	}
	entry.Info("Odds import recorded")
}
