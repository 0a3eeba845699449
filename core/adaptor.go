package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/interop"
)

// AdaptorRequest returns the companion request that needs the user's
// attention. Requests the core can answer on its own are answered here and
// are not returned.
func (c *Core) AdaptorRequest() (interop.PendingRequest, bool) {
	adaptor := c.interop.Adaptor()
	req, ok := adaptor.Pending()
	if !ok {
		return req, false
	}

	if _, isConnect := req.Request.(interop.ConnectRequest); isConnect && c.registry.Has(KindAccountManager) {
		if acc := c.ActiveAccount(); acc != nil {
			if err := adaptor.Respond(interop.ConnectResponse{Address: acc.ReceiveAddress()}); err == nil {
				c.logger.Info("adaptor connect answered", "id", req.CorrelationID(), "account", acc.NameOrID())
			}
			return interop.PendingRequest{}, false
		}
	}
	return req, true
}

// AdaptorBlocksUI reports whether the pending request replaces the module view.
func (c *Core) AdaptorBlocksUI() bool {
	req, ok := c.AdaptorRequest()
	if !ok {
		return false
	}
	_, isTest := req.Request.(interop.TestRequest)
	return isTest
}

// UpdateAdaptor handles keys while a request is shown. It reports whether
// the key was consumed.
func (c *Core) UpdateAdaptor(msg tea.KeyMsg) bool {
	req, ok := c.AdaptorRequest()
	if !ok {
		return false
	}
	test, isTest := req.Request.(interop.TestRequest)
	if !isTest {
		return false
	}
	if msg.String() == "enter" {
		if err := c.interop.Adaptor().Respond(interop.TestResponse{Response: test.Data}); err != nil {
			c.logger.Warn("adaptor response failed", "err", err)
		} else {
			c.logger.Info("adaptor test completed", "id", req.CorrelationID())
		}
	}
	return true
}
