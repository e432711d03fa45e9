package rpc

import (
	"math/big"
	"strconv"
)

type stakeParams struct {
	Caller string `json:"caller"`
	Value  string `json:"value"`
}

type requestWithdrawalParams struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type claimParams struct {
	Caller    string `json:"caller"`
	RequestID uint64 `json:"requestId"`
}

type requestIDParams struct {
	RequestID uint64 `json:"requestId"`
}

type amountParams struct {
	Amount string `json:"amount"`
}

type withdrawalRequestResult struct {
	ID            uint64 `json:"id"`
	Owner         string `json:"owner"`
	ReceiptAmount string `json:"receiptAmount"`
	RequestTime   uint64 `json:"requestTime"`
	Claimed       bool   `json:"claimed"`
}

type poolStateResult struct {
	TotalPooled     string `json:"totalPooled"`
	ReceiptSupply   string `json:"receiptSupply"`
	PendingLocked   string `json:"pendingLocked"`
	AprBps          uint64 `json:"aprBps"`
	LastAccrualTime uint64 `json:"lastAccrualTime"`
	AccruedTotal    string `json:"accruedTotal"`
	WithdrawalDelay uint64 `json:"withdrawalDelay"`
	Paused          bool   `json:"paused"`
	Owner           string `json:"owner"`
	VaultBalance    string `json:"vaultBalance"`
}

func (s *Server) handleStake(req *RPCRequest) (interface{}, error) {
	var params stakeParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	value, err := parseAmount(params.Value)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Stake(caller, value); err != nil {
		return nil, err
	}
	s.publishAccounting()
	return true, nil
}

func (s *Server) handleRequestWithdrawal(req *RPCRequest) (interface{}, error) {
	var params requestWithdrawalParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	id, err := s.engine.RequestWithdrawal(caller, amount)
	if err != nil {
		return nil, err
	}
	s.publishAccounting()
	return map[string]string{"requestId": strconv.FormatUint(id, 10)}, nil
}

func (s *Server) handleClaimWithdrawal(req *RPCRequest) (interface{}, error) {
	var params claimParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	paid, err := s.engine.ClaimWithdrawal(caller, params.RequestID)
	if err != nil {
		return nil, err
	}
	s.publishAccounting()
	return map[string]string{"baseAmount": paid.String()}, nil
}

func (s *Server) handleCanClaim(req *RPCRequest) (interface{}, error) {
	var params requestIDParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	return s.engine.CanClaim(params.RequestID)
}

func (s *Server) handleWithdrawalRequest(req *RPCRequest) (interface{}, error) {
	var params requestIDParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	record, ok, err := s.engine.Request(params.RequestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, paramErrorf("unknown request id %d", params.RequestID)
	}
	return &withdrawalRequestResult{
		ID:            record.ID,
		Owner:         record.Owner.Hex(),
		ReceiptAmount: record.ReceiptAmount.String(),
		RequestTime:   record.RequestUnix,
		Claimed:       record.Claimed,
	}, nil
}

func (s *Server) handleWithdrawalRequestsOf(req *RPCRequest) (interface{}, error) {
	var params accountParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	owner, err := parseAddress(params.Account, "account")
	if err != nil {
		return nil, err
	}
	ids, err := s.engine.RequestsByOwner(owner)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return ids, nil
}

func (s *Server) handleExchangeRate(*RPCRequest) (interface{}, error) {
	rate, err := s.engine.ExchangeRate()
	if err != nil {
		return nil, err
	}
	return rate.String(), nil
}

func (s *Server) handleReceiptToBase(req *RPCRequest) (interface{}, error) {
	var params amountParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	out, err := s.engine.ReceiptToBase(amount)
	if err != nil {
		return nil, err
	}
	return out.String(), nil
}

func (s *Server) handleBaseToReceipt(req *RPCRequest) (interface{}, error) {
	var params amountParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	out, err := s.engine.BaseToReceipt(amount)
	if err != nil {
		return nil, err
	}
	return out.String(), nil
}

func (s *Server) handlePoolState(*RPCRequest) (interface{}, error) {
	pool, err := s.engine.PoolState()
	if err != nil {
		return nil, err
	}
	supply, err := s.engine.Token().TotalSupply()
	if err != nil {
		return nil, err
	}
	delay, err := s.engine.WithdrawalDelay()
	if err != nil {
		return nil, err
	}
	paused, err := s.engine.IsPaused()
	if err != nil {
		return nil, err
	}
	owner, err := s.engine.Owner()
	if err != nil {
		return nil, err
	}
	vault, err := s.engine.VaultBalance()
	if err != nil {
		return nil, err
	}
	return &poolStateResult{
		TotalPooled:     pool.TotalPooled.String(),
		ReceiptSupply:   supply.String(),
		PendingLocked:   pool.PendingLocked.String(),
		AprBps:          pool.AprBps,
		LastAccrualTime: pool.LastAccrualUnix,
		AccruedTotal:    pool.AccruedTotal.String(),
		WithdrawalDelay: delay,
		Paused:          paused,
		Owner:           owner.Hex(),
		VaultBalance:    vault.String(),
	}, nil
}

// publishAccounting refreshes the headline gauges after a successful
// mutation. Gauge precision is best effort; exact values stay in state.
func (s *Server) publishAccounting() {
	pool, err := s.engine.PoolState()
	if err != nil {
		return
	}
	supply, err := s.engine.Token().TotalSupply()
	if err != nil {
		return
	}
	rate, err := s.engine.ExchangeRate()
	if err != nil {
		return
	}
	pooled, _ := new(big.Float).SetInt(pool.TotalPooled).Float64()
	supplyF, _ := new(big.Float).SetInt(supply).Float64()
	rateF, _ := new(big.Float).SetInt(rate).Float64()
	s.metrics.SetAccounting(pooled, supplyF, rateF)
}
