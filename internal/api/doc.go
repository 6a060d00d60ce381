// Package api is the HTTP interface of the service. Handlers decode requests,
// call the service layer and encode responses; HandleAPIError turns any error
// into a status code and a JSON body of the form
//
//	{"error": "<message>", "code": "<CODE>", "trace_id": "<id>"}
//
// Business errors keep their code (INVALID_TOKEN, USER_NOT_FOUND,
// PRODUCT_OUT_OF_STOCK) and their message. Other errors are classified by
// kind and answered with a fixed message.
package api
