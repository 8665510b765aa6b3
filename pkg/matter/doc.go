// Package matter ties the data model, the clusters and the Interaction
// Model engine together into a device that answers IM messages.
//
// # Creating a Device
//
// NewDevice creates the root endpoint with its Descriptor cluster.
// Application endpoints are added with the Endpoint builder; every endpoint
// gets a Descriptor cluster if it does not bring one:
//
//	dev, err := matter.NewDevice(matter.DeviceConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lightEP := matter.NewEndpoint(1).
//	    WithDeviceType(datamodel.DeviceTypeOnOffLight, 3).
//	    AddCluster(onoff.New(onoff.Config{EndpointID: 1}))
//	if err := dev.AddEndpoint(lightEP); err != nil {
//	    log.Fatal(err)
//	}
//
// # Serving Messages
//
// Each conversation with a peer gets its own exchange:
//
//	x := dev.Engine().NewExchange()
//	out, err := x.HandleMessage(ctx, message.OpcodeReadRequest, payload)
//
// out is nil when nothing is to be sent back.
package matter
