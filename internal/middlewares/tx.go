package middlewares

import (
	"bytes"
	"database/sql"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/repositories"
)

// ReadTxMiddleware runs the handler inside one read-only REPEATABLE READ
// transaction so that every query it makes sees the same snapshot. The
// response is held back until the transaction commits; a failed commit
// turns it into a 500.
func ReadTxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), &sql.TxOptions{
				Isolation: sql.LevelRepeatableRead,
				ReadOnly:  true,
			})
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					_ = tx.Rollback()
					panic(rec)
				}
			}()

			buf := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(buf, r.WithContext(repositories.WithTx(r.Context(), tx)))

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				w.Header().Del("Content-Type")
				w.Header().Del("Content-Length")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			w.WriteHeader(buf.status)
			_, _ = w.Write(buf.body.Bytes())
		})
	}
}

// bufferedWriter keeps the status and body until they are flushed.
// Headers go straight to the wrapped writer since nothing is sent before
// WriteHeader.
type bufferedWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.status = code
	b.wroteHeader = true
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}
