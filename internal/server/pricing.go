package server

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const PricingServiceName = "storefront.v1.PricingService"

// PricingServer prices products and client-side carts. Messages are google.protobuf.Struct
// documents:
//
//	ResolvePrice {product_id} -> {product_id, base_price, effective_price, offer_id, offer_title, discount_percent}
//	QuoteCart {items: [{product_id, quantity}]} -> {total, item_count, lines: [...]}
type PricingServer interface {
	ResolvePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	QuoteCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type OfferSource interface {
	ListOffers(ctx context.Context) ([]model.Offer, error)
}

type PricingService struct {
	products checkout.ProductLookup
	offers   OfferSource
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewPricingService(products checkout.ProductLookup, offers OfferSource, log logger.ZapLogger) *PricingService {
	return &PricingService{
		products: products,
		offers:   offers,
		logger:   log,
		now:      time.Now,
	}
}

func (s *PricingService) ResolvePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["product_id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	found, err := s.products.GetProducts(ctx, []string{id})
	if err != nil {
		s.logger.Error("failed to load product", zap.String("product_id", id), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load product")
	}
	p, ok := found[id]
	if !ok || !p.IsActive {
		return nil, status.Error(codes.NotFound, "product not found")
	}

	q := pricing.QuoteProduct(&p, s.loadOffers(ctx), s.now())
	return structpb.NewStruct(map[string]interface{}{
		"product_id":       q.ProductID,
		"base_price":       q.BasePrice,
		"effective_price":  q.EffectivePrice,
		"offer_id":         q.OfferID,
		"offer_title":      q.OfferTitle,
		"discount_percent": pricing.PercentOff(q.EffectivePrice, q.BasePrice),
	})
}

func (s *PricingService) QuoteCart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	values := req.GetFields()["items"].GetListValue().GetValues()
	lines := make([]checkout.Line, 0, len(values))
	for _, v := range values {
		fields := v.GetStructValue().GetFields()
		lines = append(lines, checkout.Line{
			ProductID: fields["product_id"].GetStringValue(),
			Quantity:  int(fields["quantity"].GetNumberValue()),
		})
	}

	c := cart.New()
	if err := checkout.FillCart(ctx, s.products, c, lines); err != nil {
		var uerr *checkout.UnavailableError
		if errors.As(err, &uerr) {
			return nil, status.Errorf(codes.InvalidArgument, "unavailable lines: %v", uerr.Lines)
		}
		s.logger.Error("failed to load cart products", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to load products")
	}

	offers := s.loadOffers(ctx)
	now := s.now()
	out := make([]interface{}, 0, len(c.Items()))
	for _, item := range c.Items() {
		q := pricing.QuoteProduct(&item.Product, offers, now)
		out = append(out, map[string]interface{}{
			"product_id":           item.Product.ID,
			"name":                 item.Product.Name,
			"quantity":             item.Quantity,
			"unit_price":           item.Product.Price,
			"effective_unit_price": q.EffectivePrice,
			"subtotal":             item.Subtotal(),
		})
	}

	return structpb.NewStruct(map[string]interface{}{
		"total":      c.Total(),
		"item_count": c.ItemCount(),
		"lines":      out,
	})
}

func (s *PricingService) loadOffers(ctx context.Context) []model.Offer {
	if s.offers == nil {
		return nil
	}
	offers, err := s.offers.ListOffers(ctx)
	if err != nil {
		s.logger.Warn("failed to load offers, quoting base prices", zap.Error(err))
		return nil
	}
	return offers
}

func RegisterPricingServer(s grpc.ServiceRegistrar, srv PricingServer) {
	s.RegisterService(&pricingServiceDesc, srv)
}

var pricingServiceDesc = grpc.ServiceDesc{
	ServiceName: PricingServiceName,
	HandlerType: (*PricingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolvePrice", Handler: resolvePriceHandler},
		{MethodName: "QuoteCart", Handler: quoteCartHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/pricing.proto",
}

func resolvePriceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PricingServer).ResolvePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + PricingServiceName + "/ResolvePrice"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PricingServer).ResolvePrice(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func quoteCartHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PricingServer).QuoteCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + PricingServiceName + "/QuoteCart"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PricingServer).QuoteCart(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
