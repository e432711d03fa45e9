package rpc

type callerParams struct {
	Caller string `json:"caller"`
}

type setAprParams struct {
	Caller string `json:"caller"`
	AprBps uint64 `json:"aprBps"`
}

type setDelayParams struct {
	Caller    string `json:"caller"`
	DelaySecs uint64 `json:"delaySecs"`
}

type valueParams struct {
	Caller string `json:"caller"`
	Value  string `json:"value"`
}

type transferOwnershipParams struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"newOwner"`
}

func (s *Server) handleSetApr(req *RPCRequest) (interface{}, error) {
	var params setAprParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetApr(caller, params.AprBps); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleSetWithdrawalDelay(req *RPCRequest) (interface{}, error) {
	var params setDelayParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	if err := s.engine.SetWithdrawalDelay(caller, params.DelaySecs); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleAddRewards(req *RPCRequest) (interface{}, error) {
	var params valueParams
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
	if err := s.engine.AddRewards(caller, value); err != nil {
		return nil, err
	}
	s.publishAccounting()
	return true, nil
}

func (s *Server) handlePause(req *RPCRequest) (interface{}, error) {
	var params callerParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	if err := s.engine.Pause(caller); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleUnpause(req *RPCRequest) (interface{}, error) {
	var params callerParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	if err := s.engine.Unpause(caller); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleTransferOwnership(req *RPCRequest) (interface{}, error) {
	var params transferOwnershipParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	newOwner, err := parseAddress(params.NewOwner, "newOwner")
	if err != nil {
		return nil, err
	}
	if err := s.engine.TransferOwnership(caller, newOwner); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleEmergencyWithdraw(req *RPCRequest) (interface{}, error) {
	var params valueParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Value)
	if err != nil {
		return nil, err
	}
	if err := s.engine.EmergencyWithdraw(caller, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleFund(req *RPCRequest) (interface{}, error) {
	var params valueParams
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
	if err := s.engine.Fund(caller, value); err != nil {
		return nil, err
	}
	return true, nil
}
