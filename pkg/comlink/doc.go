// Package comlink is a client for the comlink game-data and player service
// and its companion unit-stats service.
//
// POST requests to the primary service are signed when both an access key
// and a secret key are configured:
//
//	X-Date:        <unix millis>
//	Authorization: HMAC-SHA256 Credential=<access key>,Signature=<hex>
//
// where the signature is HMAC-SHA256(secret, X-Date + "POST" + path + hex(md5(body))).
// GET requests are never signed.
//
// A failed primary-service call whose response body declares a message or
// code is returned as *Error, with the transport's own values kept in
// OriginalMessage and OriginalCode. Stats-service errors are returned as the
// transport produced them.
package comlink
