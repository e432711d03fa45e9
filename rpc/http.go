package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	poolerr "liquidstake/core/errors"
	"liquidstake/native/stakepool"
	"liquidstake/observability"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000

	codeUnauthorized                = -32021
	codeZeroAddress                 = -32022
	codeInvalidAmount               = -32023
	codeInsufficientBalance         = -32024
	codeInsufficientAllowance       = -32025
	codeInsufficientContractBalance = -32026
	codeAlreadyClaimed              = -32027
	codeNotYourRequest              = -32028
	codeWithdrawalDelayNotMet       = -32029
	codePaused                      = -32030
)

// Server exposes the pool engine over JSON-RPC. It is the host-interface
// adapter: it supplies caller identity from the request payload, parses
// decimal amounts, and maps the engine's closed error taxonomy onto
// structured error codes.
type Server struct {
	engine  *stakepool.Engine
	logger  *slog.Logger
	metrics *observability.PoolMetrics
}

// NewServer creates an RPC server around the engine.
func NewServer(engine *stakepool.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, logger: logger, metrics: observability.Pool()}
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      interface{}       `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// ServeHTTP implements the single JSON-RPC endpoint.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, nil, codeInvalidRequest, "POST required", nil)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "unable to read request body", nil)
		return
	}
	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON-RPC request", err.Error())
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported JSON-RPC version", nil)
		return
	}
	s.dispatch(w, &req)
}

func (s *Server) dispatch(w http.ResponseWriter, req *RPCRequest) {
	handler, ok := s.routes()[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method), nil)
		return
	}
	result, err := handler(req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ObserveOperation(req.Method, outcome)
	if err != nil {
		status, code, message := classifyError(err)
		if code == codeServerError {
			s.logger.Error("rpc call failed", "method", req.Method, "err", err)
		}
		writeError(w, status, req.ID, code, message, nil)
		return
	}
	writeResult(w, req.ID, result)
}

type handlerFunc func(*RPCRequest) (interface{}, error)

func (s *Server) routes() map[string]handlerFunc {
	return map[string]handlerFunc{
		"token_name": s.handleTokenName,
		"token_symbol": s.handleTokenSymbol,
		"token_decimals": s.handleTokenDecimals,
		"token_totalSupply": s.handleTotalSupply,
		"token_balanceOf": s.handleBalanceOf,
		"token_allowance": s.handleAllowance,
		"token_transfer": s.handleTransfer,
		"token_approve": s.handleApprove,
		"token_transferFrom": s.handleTransferFrom,

		"pool_stake": s.handleStake,
		"pool_requestWithdrawal": s.handleRequestWithdrawal,
		"pool_claimWithdrawal": s.handleClaimWithdrawal,
		"pool_canClaim": s.handleCanClaim,
		"pool_withdrawalRequest": s.handleWithdrawalRequest,
		"pool_withdrawalRequestsOf": s.handleWithdrawalRequestsOf,
		"pool_exchangeRate": s.handleExchangeRate,
		"pool_receiptToBase": s.handleReceiptToBase,
		"pool_baseToReceipt": s.handleBaseToReceipt,
		"pool_state": s.handlePoolState,
		"pool_setApr": s.handleSetApr,
		"pool_setWithdrawalDelay": s.handleSetWithdrawalDelay,
		"pool_addRewards": s.handleAddRewards,
		"pool_pause": s.handlePause,
		"pool_unpause": s.handleUnpause,
		"pool_transferOwnership": s.handleTransferOwnership,
		"pool_emergencyWithdraw": s.handleEmergencyWithdraw,
		"pool_fund": s.handleFund,
	}
}

var errorCodes = []struct {
	err  error
	code int
}{
	{poolerr.ErrUnauthorized, codeUnauthorized},
	{poolerr.ErrZeroAddress, codeZeroAddress},
	{poolerr.ErrInvalidAmount, codeInvalidAmount},
	{poolerr.ErrInsufficientBalance, codeInsufficientBalance},
	{poolerr.ErrInsufficientAllowance, codeInsufficientAllowance},
	{poolerr.ErrInsufficientContractBalance, codeInsufficientContractBalance},
	{poolerr.ErrAlreadyClaimed, codeAlreadyClaimed},
	{poolerr.ErrNotYourRequest, codeNotYourRequest},
	{poolerr.ErrWithdrawalDelayNotMet, codeWithdrawalDelayNotMet},
	{poolerr.ErrPaused, codePaused},
}

func classifyError(err error) (status, code int, message string) {
	var paramErr *paramError
	if errors.As(err, &paramErr) {
		return http.StatusBadRequest, codeInvalidParams, paramErr.Error()
	}
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			return http.StatusBadRequest, entry.code, entry.err.Error()
		}
	}
	return http.StatusInternalServerError, codeServerError, "internal error"
}

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }

func paramErrorf(format string, args ...interface{}) error {
	return &paramError{msg: fmt.Sprintf(format, args...)}
}

func writeResult(w http.ResponseWriter, id, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(&RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result})
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&RPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message, Data: data},
	})
}

func decodeParams(req *RPCRequest, out interface{}) error {
	if len(req.Params) != 1 {
		return paramErrorf("exactly one parameter object expected")
	}
	if err := json.Unmarshal(req.Params[0], out); err != nil {
		return paramErrorf("invalid parameter object: %v", err)
	}
	return nil
}

func parseAddress(value, field string) (common.Address, error) {
	trimmed := strings.TrimSpace(value)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, paramErrorf("invalid %s address", field)
	}
	return common.HexToAddress(trimmed), nil
}

// parseAmount accepts non-negative decimal amounts. Range checks beyond that
// belong to the engine.
func parseAmount(amount string) (*big.Int, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return nil, paramErrorf("amount is required")
	}
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, paramErrorf("invalid amount")
	}
	if value.Sign() < 0 {
		return nil, paramErrorf("amount must not be negative")
	}
	return value, nil
}
