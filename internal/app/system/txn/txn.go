// internal/app/system/txn/txn.go
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a multi-document transaction. When the
// server cannot do transactions (standalone mongod, old DocDB), it falls
// back to running fn outside a session so the operation still completes;
// the all-or-nothing guarantee is then best effort and the fallback is
// logged once per call.
//
// fn must issue every operation through the supplied context so the writes
// ride the session when one exists.
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Warn("transactions unsupported by server, running unbatched", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Warn("transactions unsupported by server, running unbatched", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate transactions are unavailable:
// 20 IllegalOperation, 51 NoSuchTransaction-adjacent illegal op, 263
// OperationNotSupportedInTransaction.
var notSupportedCodes = map[int32]struct{}{20: {}, 51: {}, 263: {}}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions (as opposed to the transaction failing).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if _, ok := notSupportedCodes[ce.Code]; ok {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	hasTxn := strings.Contains(msg, "transaction")
	hasSession := strings.Contains(msg, "session")
	if !hasTxn && !hasSession {
		return false
	}
	if hasTxn && hasSession {
		return true
	}
	for _, hint := range []string{"replica set", "not supported", "illegal operation"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
