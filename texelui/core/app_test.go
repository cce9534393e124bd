// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import "testing"

func TestNotifierCoalesces(t *testing.T) {
	var n Notifier
	n.Request() // no channel: must not panic or block

	ch := make(chan bool, 1)
	n.Set(ch)
	n.Request()
	n.Request()
	if len(ch) != 1 {
		t.Fatalf("expected one pending refresh, got %d", len(ch))
	}
	<-ch
	n.Set(nil)
	n.Request()
	if len(ch) != 0 {
		t.Fatal("request delivered after notifier was cleared")
	}
}
