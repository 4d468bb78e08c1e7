package catalog

import "auris/models"

// seedProducts is the store's full inventory. Prices are whole dollars.
var seedProducts = []models.Product{
	{
		ID:        "1",
		Slug:      "yx1-earphones",
		Name:      "YX1 Wireless Earphones",
		ShortName: "YX1",
		Category:  models.CategoryEarphones,
		Price:     599,
		Description: "Tailor your listening experience with bespoke dynamic drivers from the new YX1 Wireless Earphones. " +
			"Enjoy incredible high-fidelity sound even in noisy environments with its active noise cancellation feature.",
		Features: "Experience unrivalled stereo sound thanks to innovative acoustic technology. With improved ergonomics designed for full day wearing, " +
			"these revolutionary earphones have been finely crafted to provide you with the perfect fit, delivering complete comfort all day long while enjoying exceptional noise isolation and truly immersive sound.\n\n" +
			"The YX1 Wireless Earphones features customizable controls for volume, music, calls, and voice assistants built into both earbuds. " +
			"The new 7-hour battery life can be extended up to 28 hours with the charging case, giving you uninterrupted play time. " +
			"Exquisite craftsmanship with a splash resistant design now available in an all new white and grey color scheme as well as the popular classic black.",
		Includes: []models.IncludedItem{
			{Quantity: 2, Item: "Earphone unit"},
			{Quantity: 6, Item: "Multi-size earplugs"},
			{Quantity: 1, Item: "User manual"},
			{Quantity: 1, Item: "USB-C charging cable"},
			{Quantity: 1, Item: "Travel pouch"},
		},
		Image:         "/static/productpic/yx1-earphones.jpg",
		CategoryImage: "/static/productpic/yx1-earphones-category.jpg",
		New:           true,
		Others: []models.RelatedProduct{
			{Slug: "xx99-mark-i", Name: "XX99 Mark I", Image: "/static/productpic/xx99-mark-i.jpg"},
			{Slug: "xx59", Name: "XX59", Image: "/static/productpic/xx59.jpg"},
			{Slug: "zx9-speaker", Name: "ZX9 Speaker", Image: "/static/productpic/zx9-speaker.jpg"},
		},
	},
	{
		ID:        "2",
		Slug:      "xx59",
		Name:      "XX59 Headphones",
		ShortName: "XX59",
		Category:  models.CategoryHeadphones,
		Price:     899,
		Description: "Enjoy your audio almost anywhere and customize it to your specific tastes with the XX59 headphones. " +
			"The stylish yet durable versatile wireless headset is a brilliant companion at home or on the move.",
		Features: "These headphones have been created from durable, high-quality materials tough enough to take anywhere. " +
			"Its compact folding design fuses comfort and minimalist style making it perfect for travel. " +
			"Flawless transmission is assured by the latest wireless technology engineered for audio synchronization with videos.\n\n" +
			"More than a simple pair of headphones, this headset features a pair of built-in microphones for clear, hands-free calling when paired with a compatible smartphone. " +
			"Controlling music and calls is also intuitive thanks to easy-access touch buttons on the earcups. " +
			"Regardless of how you use the XX59 headphones, you can do so all day thanks to an impressive 30-hour battery life that can be rapidly recharged via USB-C.",
		Includes: []models.IncludedItem{
			{Quantity: 1, Item: "Headphone unit"},
			{Quantity: 2, Item: "Replacement earcups"},
			{Quantity: 1, Item: "User manual"},
			{Quantity: 1, Item: "3.5mm audio cable"},
		},
		Image:         "/static/productpic/xx59.jpg",
		CategoryImage: "/static/productpic/xx59-category.jpg",
		New:           false,
		Others: []models.RelatedProduct{
			{Slug: "xx99-mark-ii", Name: "XX99 Mark II", Image: "/static/productpic/xx99-mark-ii.jpg"},
			{Slug: "xx99-mark-i", Name: "XX99 Mark I", Image: "/static/productpic/xx99-mark-i.jpg"},
			{Slug: "zx9-speaker", Name: "ZX9 Speaker", Image: "/static/productpic/zx9-speaker.jpg"},
		},
	},
	{
		ID:        "3",
		Slug:      "xx99-mark-i",
		Name:      "XX99 Mark I Headphones",
		ShortName: "XX99 Mark I",
		Category:  models.CategoryHeadphones,
		Price:     1750,
		Description: "As the gold standard for headphones, the classic XX99 Mark I offers detailed and accurate audio reproduction for audiophiles, " +
			"mixing engineers, and music aficionados alike in studios and on the go.",
		Features: "As the headphones all others are measured against, the XX99 Mark I demonstrates over five decades of audio expertise, " +
			"redefining the critical listening experience. This pair of closed-back headphones are made of industrial, aerospace-grade materials to emphasize durability at a relatively light weight of 11 oz.\n\n" +
			"From the handcrafted microfiber ear cushions to the robust metal headband with inner damping element, the components work together to deliver comfort and uncompromising sound. " +
			"Its closed-back design delivers up to 27 dB of passive noise cancellation, reducing resonance by reflecting sound to a dedicated absorber. " +
			"For connectivity, a specially tuned cable is included with a balanced gold connector.",
		Includes: []models.IncludedItem{
			{Quantity: 1, Item: "Headphone unit"},
			{Quantity: 2, Item: "Replacement earcups"},
			{Quantity: 1, Item: "User manual"},
			{Quantity: 1, Item: "3.5mm audio cable"},
		},
		Image:         "/static/productpic/xx99-mark-i.jpg",
		CategoryImage: "/static/productpic/xx99-mark-i-category.jpg",
		New:           false,
		Others: []models.RelatedProduct{
			{Slug: "xx99-mark-ii", Name: "XX99 Mark II", Image: "/static/productpic/xx99-mark-ii.jpg"},
			{Slug: "xx59", Name: "XX59", Image: "/static/productpic/xx59.jpg"},
			{Slug: "zx9-speaker", Name: "ZX9 Speaker", Image: "/static/productpic/zx9-speaker.jpg"},
		},
	},
	{
		ID:        "4",
		Slug:      "xx99-mark-ii",
		Name:      "XX99 Mark II Headphones",
		ShortName: "XX99 Mark II",
		Category:  models.CategoryHeadphones,
		Price:     2999,
		Description: "The new XX99 Mark II headphones is the pinnacle of pristine audio. " +
			"It redefines your premium headphone experience by reproducing the balanced depth and precision of studio-quality sound.",
		Features: "Featuring a genuine leather head strap and premium earcups, these headphones deliver superior comfort for those who like to enjoy endless listening. " +
			"It includes intuitive controls designed for any situation. Whether you are taking a business call or just in your own personal space, the auto on/off and pause features ensure that you will never miss a beat.\n\n" +
			"The advanced Active Noise Cancellation with built-in equalizer allow you to experience your audio world on your terms. " +
			"It lets you enjoy your audio in peace, but quickly interact with your surroundings when you need to. " +
			"Combined with Bluetooth 5.0 compliant connectivity and 17 hour battery life, the XX99 Mark II headphones gives you superior sound, cutting-edge technology, and a modern design aesthetic.",
		Includes: []models.IncludedItem{
			{Quantity: 1, Item: "Headphone unit"},
			{Quantity: 2, Item: "Replacement earcups"},
			{Quantity: 1, Item: "User manual"},
			{Quantity: 1, Item: "3.5mm audio cable"},
			{Quantity: 1, Item: "Travel bag"},
		},
		Image:         "/static/productpic/xx99-mark-ii.jpg",
		CategoryImage: "/static/productpic/xx99-mark-ii-category.jpg",
		New:           true,
		Others: []models.RelatedProduct{
			{Slug: "xx99-mark-i", Name: "XX99 Mark I", Image: "/static/productpic/xx99-mark-i.jpg"},
			{Slug: "xx59", Name: "XX59", Image: "/static/productpic/xx59.jpg"},
			{Slug: "zx9-speaker", Name: "ZX9 Speaker", Image: "/static/productpic/zx9-speaker.jpg"},
		},
	},
	{
		ID:        "5",
		Slug:      "zx7-speaker",
		Name:      "ZX7 Speaker",
		ShortName: "ZX7",
		Category:  models.CategorySpeakers,
		Price:     3500,
		Description: "Stream high quality sound wirelessly with minimal to no loss. " +
			"The ZX7 speaker uses high-end audiophile components that represents the top of the line powered speakers for home or studio use.",
		Features: "Reap the advantages of a flat diaphragm tweeter cone. This provides a fast response rate and excellent high frequencies that lower tiered bookshelf speakers cannot provide. " +
			"The woofers are made from aluminum that produces a unique and clear sound. XLR inputs allow you to connect to a mixer for more advanced usage.\n\n" +
			"The ZX7 speaker is the perfect blend of stylish design and high performance. It houses an encased MDF wooden enclosure which minimises acoustic resonance. " +
			"Dual connectivity allows pairing through bluetooth or traditional optical and RCA input. Switch input sources and control volume at your finger tips with the included wireless remote. " +
			"This versatile speaker is equipped to deliver an authentic listening experience.",
		Includes: []models.IncludedItem{
			{Quantity: 2, Item: "Speaker unit"},
			{Quantity: 2, Item: "Speaker cloth panel"},
			{Quantity: 1, Item: "User manual"},
			{Quantity: 1, Item: "3.5mm audio cable"},
			{Quantity: 1, Item: "7.5m optical cable"},
		},
		Image:         "/static/productpic/zx7-speaker.jpg",
		CategoryImage: "/static/productpic/zx7-speaker-category.jpg",
		New:           false,
		Others: []models.RelatedProduct{
			{Slug: "zx9-speaker", Name: "ZX9 Speaker", Image: "/static/productpic/zx9-speaker.jpg"},
			{Slug: "xx99-mark-i", Name: "XX99 Mark I", Image: "/static/productpic/xx99-mark-i.jpg"},
			{Slug: "xx59", Name: "XX59", Image: "/static/productpic/xx59.jpg"},
		},
	},
	{
		ID:        "6",
		Slug:      "zx9-speaker",
		Name:      "ZX9 Speaker",
		ShortName: "ZX9",
		Category:  models.CategorySpeakers,
		Price:     4500,
		Description: "Upgrade your sound system with the all new ZX9 active speaker. " +
			"It's a bookshelf speaker system that offers truly wireless connectivity -- creating new possibilities for more pleasing and practical audio setups.",
		Features: "Connect via Bluetooth or nearly any wired source. This speaker features optical, digital coaxial, USB Type-B, stereo RCA, and stereo XLR inputs, " +
			"allowing you to have up to five wired source devices connected for easy switching. Improved bluetooth technology offers near lossless audio quality at up to 328ft (100m).\n\n" +
			"Discover clear, more natural sounding highs than the competition with ZX9's signature planar diaphragm tweeter. " +
			"Equally important is its powerful room-shaking bass courtesy of a 6.5\" aluminum alloy bass unit. " +
			"You'll be able to enjoy equal sound quality whether in a large room or small den. " +
			"Furthermore, you will experience new sensations from old songs since it can respond to even the subtle waveforms.",
		Includes: []models.IncludedItem{
			{Quantity: 2, Item: "Speaker unit"},
			{Quantity: 2, Item: "Speaker cloth panel"},
			{Quantity: 1, Item: "User manual"},
			{Quantity: 1, Item: "3.5mm audio cable"},
			{Quantity: 1, Item: "10m optical cable"},
		},
		Image:         "/static/productpic/zx9-speaker.jpg",
		CategoryImage: "/static/productpic/zx9-speaker-category.jpg",
		New:           true,
		Others: []models.RelatedProduct{
			{Slug: "zx7-speaker", Name: "ZX7 Speaker", Image: "/static/productpic/zx7-speaker.jpg"},
			{Slug: "xx99-mark-i", Name: "XX99 Mark I", Image: "/static/productpic/xx99-mark-i.jpg"},
			{Slug: "xx59", Name: "XX59", Image: "/static/productpic/xx59.jpg"},
		},
	},
}
