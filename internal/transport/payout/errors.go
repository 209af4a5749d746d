package payout

import "errors"

var ErrNoAffiliates = errors.New("no affiliates due for payout")
