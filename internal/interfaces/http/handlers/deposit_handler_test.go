package handlers

import (
	"errors"
	"math/big"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitDeposit_Endpoint(t *testing.T) {
	s := newTestServer(t)
	s.registerDonor(t, testDonor)

	s.verifier.sender = testDonor
	s.verifier.value = big.NewInt(500)

	w := s.do(t, http.MethodPost, "/api/v1/deposits", map[string]interface{}{
		"address": testDonor,
		"txHash":  testTxHash,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, testTxHash, body["txHash"])
	assert.Equal(t, "500", body["amount"])

	w = s.do(t, http.MethodGet, "/api/v1/balances/"+testDonor, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "500", decodeBody(t, w)["balance"])
}

func TestSubmitDeposit_Duplicate_Endpoint(t *testing.T) {
	s := newTestServer(t)
	s.registerDonor(t, testDonor)
	s.fundDonorBalance(t, testDonor, testTxHash, 500)

	w := s.do(t, http.MethodPost, "/api/v1/deposits", map[string]interface{}{
		"address": testDonor,
		"txHash":  testTxHash,
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DEPOSIT_EXISTS")

	// The duplicate must not credit a second time.
	w = s.do(t, http.MethodGet, "/api/v1/balances/"+testDonor, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "500", decodeBody(t, w)["balance"])
}

func TestSubmitDeposit_Failures_Endpoint(t *testing.T) {
	s := newTestServer(t)
	s.registerDonor(t, testDonor)

	// Unregistered depositor.
	w := s.do(t, http.MethodPost, "/api/v1/deposits", map[string]interface{}{
		"address": testOtherAddr,
		"txHash":  testTxHash,
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Sender recovered from the chain does not match the claimed address.
	s.verifier.sender = testOtherAddr
	w = s.do(t, http.MethodPost, "/api/v1/deposits", map[string]interface{}{
		"address": testDonor,
		"txHash":  testTxHash,
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	s.verifier.sender = testDonor

	// Chain verification failed outright.
	s.verifier.err = errors.New("tx not found")
	w = s.do(t, http.MethodPost, "/api/v1/deposits", map[string]interface{}{
		"address": testDonor,
		"txHash":  testTxHash,
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "TRANSFER_FAILED")
	s.verifier.err = nil

	// Missing fields.
	w = s.do(t, http.MethodPost, "/api/v1/deposits", map[string]interface{}{
		"address": testDonor,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBalance_UnknownAddress_Endpoint(t *testing.T) {
	s := newTestServer(t)

	// Unknown addresses read as zero rather than erroring.
	w := s.do(t, http.MethodGet, "/api/v1/balances/"+testOtherAddr, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, testOtherAddr, body["address"])
	assert.Equal(t, "0", body["balance"])

	w = s.do(t, http.MethodGet, "/api/v1/balances/garbage", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}
