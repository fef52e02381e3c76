package treeops

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/transform"
)

var logger atomic.Pointer[logrus.Entry]

func init() {
	SetLogger(logrus.StandardLogger())
}

// SetLogger routes command logging to l.
func SetLogger(l *logrus.Logger) {
	logger.Store(l.WithField("component", "treeops"))
}

// noop logs why op did not apply and returns tr unchanged.
func noop(tr *transform.Transaction, op, reason string) *transform.Transaction {
	logger.Load().WithFields(logrus.Fields{
		"tx":     tr.ID(),
		"op":     op,
		"reason": reason,
	}).Debug("command not applied")
	return tr
}

func applied(tr *transform.Transaction, op string, fields logrus.Fields) *transform.Transaction {
	logger.Load().WithFields(fields).WithFields(logrus.Fields{
		"tx":    tr.ID(),
		"op":    op,
		"steps": len(tr.Steps()),
	}).Debug("command applied")
	return tr
}
