package rpc

type accountParams struct {
	Account string `json:"account"`
}

type allowanceParams struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type transferParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type approveParams struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type transferFromParams struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (s *Server) handleTokenName(*RPCRequest) (interface{}, error) {
	meta, err := s.engine.Metadata()
	if err != nil {
		return nil, err
	}
	return meta.Name, nil
}

func (s *Server) handleTokenSymbol(*RPCRequest) (interface{}, error) {
	meta, err := s.engine.Metadata()
	if err != nil {
		return nil, err
	}
	return meta.Symbol, nil
}

func (s *Server) handleTokenDecimals(*RPCRequest) (interface{}, error) {
	meta, err := s.engine.Metadata()
	if err != nil {
		return nil, err
	}
	return meta.Decimals, nil
}

func (s *Server) handleTotalSupply(*RPCRequest) (interface{}, error) {
	supply, err := s.engine.Token().TotalSupply()
	if err != nil {
		return nil, err
	}
	return supply.String(), nil
}

func (s *Server) handleBalanceOf(req *RPCRequest) (interface{}, error) {
	var params accountParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	account, err := parseAddress(params.Account, "account")
	if err != nil {
		return nil, err
	}
	balance, err := s.engine.Token().BalanceOf(account)
	if err != nil {
		return nil, err
	}
	return balance.String(), nil
}

func (s *Server) handleAllowance(req *RPCRequest) (interface{}, error) {
	var params allowanceParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	owner, err := parseAddress(params.Owner, "owner")
	if err != nil {
		return nil, err
	}
	spender, err := parseAddress(params.Spender, "spender")
	if err != nil {
		return nil, err
	}
	allowance, err := s.engine.Token().Allowance(owner, spender)
	if err != nil {
		return nil, err
	}
	return allowance.String(), nil
}

func (s *Server) handleTransfer(req *RPCRequest) (interface{}, error) {
	var params transferParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	to, err := parseAddress(params.To, "to")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Token().Transfer(caller, to, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleApprove(req *RPCRequest) (interface{}, error) {
	var params approveParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	spender, err := parseAddress(params.Spender, "spender")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Token().Approve(caller, spender, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) handleTransferFrom(req *RPCRequest) (interface{}, error) {
	var params transferFromParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller, "caller")
	if err != nil {
		return nil, err
	}
	from, err := parseAddress(params.From, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseAddress(params.To, "to")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Token().TransferFrom(caller, from, to, amount); err != nil {
		return nil, err
	}
	return true, nil
}
