package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func sampleAlert() ports.LowStockAlert {
	return ports.LowStockAlert{
		ShopID:           "shop-1",
		ProductID:        "p-1",
		ProductName:      "Café molido",
		SKU:              "CAF-1",
		CurrentStock:     2,
		ReorderThreshold: 10,
		Deficit:          8,
		Critical:         true,
		Channels:         []string{"email"},
		OccurredAt:       time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_PublicaJSONConClaveDeTienda(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, logger.NewNop())

	require.NoError(t, p.Notify(context.Background(), sampleAlert()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "shop-1", string(w.msgs[0].Key))

	var got ports.LowStockAlert
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "p-1", got.ProductID)
	assert.Equal(t, 8, got.Deficit)
	assert.True(t, got.Critical)
}

func TestKafkaPublisher_PropagaErrorDelWriter(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{err: errors.New("broker caído")}, logger.NewNop())
	assert.Error(t, p.Notify(context.Background(), sampleAlert()))
}

func TestNewKafkaPublisher_SinBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "", nil)
	assert.Error(t, err)
}

func TestLogNotifier_RegistraEvento(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logger.NewWithWriter(&buf))

	require.NoError(t, n.Notify(context.Background(), sampleAlert()))
	assert.Contains(t, buf.String(), `"product_id":"p-1"`)
	assert.Contains(t, buf.String(), `"critical":true`)
	assert.Contains(t, buf.String(), "alerta de stock bajo")
}
