// Package zebra управляет этикеточными принтерами, понимающими язык ZPL,
// по сырому TCP-соединению.
//
// Клиент сериализует команды из пакета zpl, отправляет их принтеру через
// транспорт из пакета printer и разбирает ответы на диагностические запросы
// с помощью пакета status. Предпросмотр этикеток выполняется сервисом
// Labelary (пакет render).
//
// Пример:
//
//	cfg := zebra.Load()
//	client, err := zebra.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	label := zpl.NewLabel().Text(50, 50, zpl.Normal, 50, 50, "Hello World!")
//	if err := client.PrintLabel(label, false); err != nil {
//		log.Fatal(err)
//	}
//
//	st, err := client.GetStatus()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(st)
package zebra
