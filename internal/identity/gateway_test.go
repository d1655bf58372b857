package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valdezlabs/citabot/internal/oracle"
)

type fakeOracle struct {
	reply string
	err   error

	lastReq oracle.Request
}

func (f *fakeOracle) Complete(_ context.Context, req oracle.Request) (oracle.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return oracle.Response{}, f.err
	}
	return oracle.Response{Text: f.reply}, nil
}

func TestGatewayValidate(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		err        error
		wantValid  bool
		wantHolder string
	}{
		{
			name:       "valid document with name",
			reply:      `{"validate": true, "nombre": "MARIA LOPEZ", "curp": "LOPM800101MDFxxx"}`,
			wantValid:  true,
			wantHolder: "MARIA LOPEZ",
		},
		{
			name:       "valid document fenced",
			reply:      "```json\n{\"validate\": true, \"nombre\": \"JUAN PEREZ\"}\n```",
			wantValid:  true,
			wantHolder: "JUAN PEREZ",
		},
		{
			name:       "valid document without name falls back to placeholder",
			reply:      `{"validate": true}`,
			wantValid:  true,
			wantHolder: DefaultHolderName,
		},
		{
			name:      "invalid document",
			reply:     `{"validate": false}`,
			wantValid: false,
		},
		{
			name:      "unparseable reply fails closed",
			reply:     "no es una imagen que pueda analizar",
			wantValid: false,
		},
		{
			name:      "oracle failure fails closed",
			err:       errors.New("upstream unavailable"),
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeOracle{reply: tt.reply, err: tt.err}
			gw := NewGateway(client, "vision-model", time.Second, nil)

			res := gw.Validate(context.Background(), []byte{0xff, 0xd8})

			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantHolder, res.HolderName)
		})
	}
}

func TestGatewayValidateSendsImage(t *testing.T) {
	client := &fakeOracle{reply: `{"validate": false}`}
	gw := NewGateway(client, "vision-model", time.Second, nil)

	image := []byte{0xff, 0xd8, 0xff, 0xe0}
	gw.Validate(context.Background(), image)

	require.Equal(t, image, client.lastReq.Image)
	assert.Equal(t, "vision-model", client.lastReq.Model)
	assert.Contains(t, client.lastReq.Prompt, "credencial de elector")
}
