// Package utils holds small helpers: SafeClose/SafeCloseChannel for
// resource cleanup, and GenerateRandomString, which the SSE layer uses
// for session IDs.
package utils

import (
	"reflect"
	"sync"

	"dspc/logging"
)

var channelCloseMutex sync.Mutex

// SafeClose closes closer without panicking, whatever it is: an object
// with a Close() error method, a channel (closed via reflection, skipped
// if already closed), or nil (ignored).
func SafeClose(closer interface{}) {
	if closer == nil {
		return
	}

	if c, ok := closer.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			logging.Print("error closing resource: %v", err)
		}
		return
	}

	SafeCloseChannel(closer)
}

// SafeCloseChannel closes ch (any channel type, via reflection) unless it
// is already closed or not a channel at all.
func SafeCloseChannel(ch interface{}) {
	if ch == nil {
		return
	}

	val := reflect.ValueOf(ch)
	if val.Kind() != reflect.Chan {
		logging.Print("SafeCloseChannel: not a channel, type %T", ch)
		return
	}

	channelCloseMutex.Lock()
	defer channelCloseMutex.Unlock()

	if !isChannelClosed(val) {
		val.Close()
	}
}

func isChannelClosed(ch reflect.Value) bool {
	if ch.Kind() != reflect.Chan {
		return true
	}

	chosen, _, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: ch},
		{Dir: reflect.SelectDefault},
	})

	return chosen == 0 && !ok
}
