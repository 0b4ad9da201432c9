// Package yarf is a small MVC request engine. Every request is resolved to a
// controller by walking its path against a module tree, dispatched to the
// action named by the method and the next path segment, and completed
// through one guarded response.
//
// # Controllers
//
// A controller exposes its actions keyed by dispatch key: the lower-cased
// method followed by the capitalized action name.
//
//	type Widgets struct{}
//
//	func (w *Widgets) Actions() yarf.Actions {
//		return yarf.Actions{
//			"getIndex": w.list,
//			"getEdit":  w.edit,
//			"postEdit": w.save,
//		}
//	}
//
//	loader := yarf.NewControllers()
//	loader.Register("widgets", func() yarf.Controller { return &Widgets{} })
//
//	engine, err := yarf.New(loader)
//
// GET /widgets runs getIndex, GET /widgets/edit/42 runs getEdit with Params
// ["42"], and OPTIONS /widgets/edit answers with "Allow: GET, POST".
// Controllers can also be declared on disk with a controller.yaml manifest
// per module directory, see NewModules.
//
// # Lifecycle
//
// ServeHTTP runs these stages, each of which may end the request:
//
//  1. Methods other than GET, POST, PUT, PATCH, DELETE, HEAD and OPTIONS get 501.
//  2. GET and HEAD requests for a file under the public directory are served as is.
//  3. The path is resolved to a controller; failure gets 500.
//  4. OPTIONS requests get 200 with an Allow header.
//  5. With sessions enabled the session is fetched or created; store failure gets 500.
//  6. A controller without the dispatch key gets 501.
//  7. The body is consumed by content type: JSON (malformed gets 400),
//     urlencoded or multipart (files are streamed to temporary files first),
//     or raw bytes.
//  8. The action runs once and ends the request with Context.Complete or Context.Fail.
//
// The session, when enabled, is saved before response headers are sent.
// A request that has not completed within the configured timeout gets 500.
// Panics are recovered and answered with 500. Error responses carry a status
// code and no body.
//
// # Responses
//
// Complete negotiates on the Accept header. Clients accepting
// application/json get the result encoded as JSON. Otherwise strings are
// sent as HTML, byte slices and readers are streamed, nil sends an empty
// body, and other values are rendered with the action's view
// (Modules/<controller>/views/<action>.html). A missing view gets 406.
package yarf
