// Package scheduler contém os serviços de agendamento dos jobs de reconciliação
package scheduler

import (
	"time"

	"github.com/sirupsen/logrus"
)

// sleepFn e nowFn são indiretas para os testes controlarem tempo e espera.
var (
	sleepFn = time.Sleep
	nowFn   = time.Now
)

// jobSpec descreve a política de execução de um job agendado: validade do
// disparo e política de retentativas com backoff exponencial.
type jobSpec struct {
	Name        string
	Expiry      time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// expired informa se um disparo esperou além da validade pelo slot de execução.
// Disparos vencidos são descartados: o próximo tick do cron cobre o trabalho.
func (j jobSpec) expired(firedAt time.Time) bool {
	return j.Expiry > 0 && nowFn().Sub(firedAt) > j.Expiry
}

// runWithRetry executa fn com retentativas em backoff exponencial
// (base * 2^tentativa). Retorna o erro da última tentativa.
func runWithRetry(spec jobSpec, fn func() error) error {
	var err error
	for attempt := 0; attempt < spec.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := spec.BackoffBase * time.Duration(1<<(attempt-1))
			logrus.WithFields(logrus.Fields{
				"job":     spec.Name,
				"attempt": attempt + 1,
				"backoff": backoff.String(),
			}).Warn("Retentativa de job agendado após falha")
			sleepFn(backoff)
		}

		if err = fn(); err == nil {
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"job":     spec.Name,
			"attempt": attempt + 1,
		}).WithError(err).Error("Falha na execução do job agendado")
	}

	return err
}
