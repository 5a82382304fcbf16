// pintable inspects, simulates and imports boot pin tables on the host.
package main

import "mlxio-go/services/hal/cmd/pintable/cmd"

func main() {
	cmd.Execute()
}
