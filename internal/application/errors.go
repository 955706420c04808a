package application

import "errors"

var ErrEmptyDataset = errors.New("no market data available")
