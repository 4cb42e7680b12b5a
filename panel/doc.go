// Package panel implements a client for the application API of a
// Pterodactyl-compatible hosting panel.
//
// Only the two calls the provisioning flow needs are implemented:
//
//   - CreateUser: POST {baseUrl}/api/application/users
//   - CreateServer: POST {baseUrl}/api/application/servers
//
// Both authenticate with the target's application API key as a bearer token,
// send and accept JSON, and treat HTTP 201 as the only success status. The
// created resource is read from the {"attributes": {...}} envelope.
//
// Any other status is returned as *APIError carrying the panel's
// {"errors": [{"code", "status", "detail"}]} entries. Transport failures
// (DNS, refused connections, timeouts) are returned wrapped. Nothing is retried.
//
// Every call is counted and timed through the metrics package.
//
// # Usage Example
//
//	client := panel.NewClient(target, 20*time.Second)
//	account, err := client.CreateUser(ctx, interfaces.UserCreation{
//		Email:     "bot@example.com",
//		Username:  "bot_x1y2z",
//		FirstName: "Bot",
//		LastName:  "User",
//		Password:  password,
//	})
//	var apiErr *panel.APIError
//	if errors.As(err, &apiErr) {
//		log.Println(apiErr.FirstDetail())
//	}
package panel
