package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Ideas() IdeaRepository
	Offers() OfferRepository
}
