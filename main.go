/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package main

import "github.com/authfront/authfront/cmd"

func main() {
	cmd.Execute()
}
